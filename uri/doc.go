// Package uri parses Uniform Resource Identifiers and relative references
// according to RFC 3986, and Internationalized Resource Identifiers
// according to RFC 3987.
//
// # Overview
//
// Parsing validates the input against the grammar and records where every
// component lives inside the input. The result is an immutable [URL] that
// references the parsed buffer, nothing is copied or decoded during parsing.
// Decoded values are produced on read.
//
//	u, err := uri.ParseURI("http://alice@example.com:8080/a/b%20c?x=1&y=2#top")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	u.Host()           // "example.com"
//	u.PortNumber()     // 8080, true
//	u.SegmentCount()   // 2
//	u.Query()          // "x=1&y=2"
//
// # Grammars
//
// [Parse] accepts a [Grammar] selecting the production:
//
//   - [GrammarURIReference]: URI / relative-ref, the usual choice for links;
//   - [GrammarURI]: scheme ":" hier-part [ "?" query ] [ "#" fragment ];
//   - [GrammarAbsoluteURI]: a URI without fragment;
//   - [GrammarRelativeRef]: relative-part [ "?" query ] [ "#" fragment ];
//   - [GrammarOriginForm]: absolute-path [ "?" query ], HTTP request targets;
//   - [GrammarAuthority]: the authority-form of CONNECT requests.
//
// Shortcuts [ParseURI], [ParseAbsoluteURI], [ParseRelativeRef],
// [ParseURIReference], [ParseOriginForm] and [ParseAuthority] use RFC 3986 rules.
// Set [ParseOptions.IRI] to accept the non-ASCII characters of RFC 3987.
//
// # Errors
//
// A failed parse returns a nil [URL] and exactly one error that wraps [*Error].
// It carries the [ErrorKind] and the byte offset of the first offending character,
// relative to the start of the input:
//
//	_, err := uri.ParseURI("http://ex ample.com/")
//	errors.Is(err, uri.ErrInvalidHost) // true
//	uri.ErrorOffset(err)               // 9, true
//
// # Views
//
// [URL.Segments] and [URL.Params] return lazy views over the path segments and
// the query key/value pairs. Each iteration re-scans the component and decodes
// on demand, no container is built unless the caller collects the sequence.
// Two views compare equal when their decoded content is equal.
//
// A query consisting of the "?" delimiter alone has one pair with an empty key and value.
//
// # Percent-encoding
//
// [Decode] and [Encode] convert between raw octets and "%HH" escapes.
// Encoding escapes every byte outside of the given [CharSet].
//
// # Tracing
//
// [ParseOptions.Observer] receives every state of the top-level parse:
// start, scheme, authority-and-path, query, fragment and finally done or failed.
// [Tracer] checks the states against the machine printed by [StateGraph].
//
// # Buffer ownership
//
// A [URL] parsed from a string shares the memory of that string. A [URL] parsed
// from a byte slice owns a private copy. [URL.Persist] returns a copy that owns
// its buffer, which detaches it from a larger parent string.
//
// # Thread Safety
//
// Parsing keeps no shared state. A [URL] is never modified after parsing,
// it and its views are safe for concurrent use.
package uri
