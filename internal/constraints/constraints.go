// Package constraints holds the type constraints of the generic URI APIs.
package constraints

// Byteseq is the input of the parse functions and the percent codec.
// A string is used as is, a byte slice is converted once.
type Byteseq interface {
	~string | ~[]byte
}
