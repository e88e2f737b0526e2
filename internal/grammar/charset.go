package grammar

// CharSet is an immutable set of bytes.
type CharSet struct {
	bits [4]uint64
}

// NewCharSet returns a set of the given characters.
func NewCharSet(chars string) CharSet {
	var cs CharSet
	for i := 0; i < len(chars); i++ {
		cs.add(chars[i])
	}
	return cs
}

// RangeSet returns a set of the characters lo through hi.
func RangeSet(lo, hi byte) CharSet {
	var cs CharSet
	for c := int(lo); c <= int(hi); c++ {
		cs.add(byte(c))
	}
	return cs
}

func (cs *CharSet) add(c byte) { cs.bits[c>>6] |= 1 << (c & 63) }

// Contains reports whether c is in the set.
func (cs CharSet) Contains(c byte) bool { return cs.bits[c>>6]&(1<<(c&63)) != 0 }

// Union returns the union of cs and others.
func (cs CharSet) Union(others ...CharSet) CharSet {
	for _, o := range others {
		for i := range cs.bits {
			cs.bits[i] |= o.bits[i]
		}
	}
	return cs
}

// With returns cs plus the given characters.
func (cs CharSet) With(chars string) CharSet { return cs.Union(NewCharSet(chars)) }

// Without returns cs minus the given characters.
func (cs CharSet) Without(chars string) CharSet {
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		cs.bits[c>>6] &^= 1 << (c & 63)
	}
	return cs
}

// Find returns the index of the first byte of s at or after pos that is not in the set,
// or len(s).
func (cs CharSet) Find(s string, pos int) int {
	for pos < len(s) && cs.Contains(s[pos]) {
		pos++
	}
	return pos
}

// Character classes of RFC 3986.
var (
	Alpha  = RangeSet('a', 'z').Union(RangeSet('A', 'Z'))
	Digit  = RangeSet('0', '9')
	HexDig = Digit.Union(RangeSet('a', 'f'), RangeSet('A', 'F'))

	Unreserved = Alpha.Union(Digit).With("-._~")
	GenDelims  = NewCharSet(":/?#[]@")
	SubDelims  = NewCharSet("!$&'()*+,;=")
	Reserved   = GenDelims.Union(SubDelims)

	SchemeChars   = Alpha.Union(Digit).With("+-.")
	UserinfoChars = Unreserved.Union(SubDelims).With(":")
	RegNameChars  = Unreserved.Union(SubDelims)
	// PChars are the characters of a path segment.
	PChars = Unreserved.Union(SubDelims).With(":@")
	// SegmentNCChars are the characters of the first segment of a relative path.
	SegmentNCChars = Unreserved.Union(SubDelims).With("@")
	PathChars      = PChars.With("/")
	QueryChars     = PChars.With("/?")
	FragmentChars  = PChars.With("/?")
	// ParamChars are the characters of a query parameter key or value.
	ParamChars = QueryChars.Without("&=+")
)

// IsUnreserved reports whether c is an unreserved character.
func IsUnreserved(c byte) bool { return Unreserved.Contains(c) }
