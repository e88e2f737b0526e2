package grammar

// Rule parses a value of type T from s starting at the cursor pos.
// len(s) is the exclusive end of the span.
//
// On success it returns the value and the advanced cursor.
// On failure it returns an error and the caller must not assume the cursor advanced.
type Rule[T any] interface {
	Parse(s string, pos int) (T, int, error)
}

// RuleFunc adapts a function to the [Rule] interface.
type RuleFunc[T any] func(s string, pos int) (T, int, error)

func (f RuleFunc[T]) Parse(s string, pos int) (T, int, error) { return f(s, pos) } //errtrace:skip

// Parse applies rule r to s at pos.
// On failure the returned cursor is pos, the point where r was started.
func Parse[T any](s string, pos int, r Rule[T]) (T, int, error) {
	v, it, err := r.Parse(s, pos)
	if err != nil {
		var zero T
		return zero, pos, err //errtrace:skip
	}
	return v, it, nil
}

// Opt is the result of an optional rule.
type Opt[T any] struct {
	Value T
	OK    bool
}

// Some returns a present [Opt].
func Some[T any](v T) Opt[T] { return Opt[T]{Value: v, OK: true} }

// Optional tries r once. On failure the cursor is rolled back to where
// the rule began and an absent value is returned instead of the error.
// This is the only backtracking point of the engine.
func Optional[T any](r Rule[T]) Rule[Opt[T]] {
	return RuleFunc[Opt[T]](func(s string, pos int) (Opt[T], int, error) {
		v, it, err := Parse(s, pos, r)
		if err != nil {
			return Opt[T]{}, pos, nil
		}
		return Some(v), it, nil
	})
}

// Pair holds the results of [Tuple2].
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple holds the results of [Tuple3].
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple2 runs a and b in sequence.
// The first failure is returned unchanged, nothing is rolled back.
func Tuple2[A, B any](a Rule[A], b Rule[B]) Rule[Pair[A, B]] {
	return RuleFunc[Pair[A, B]](func(s string, pos int) (Pair[A, B], int, error) {
		var (
			res Pair[A, B]
			err error
		)
		if res.First, pos, err = Parse(s, pos, a); err != nil {
			return Pair[A, B]{}, pos, err //errtrace:skip
		}
		if res.Second, pos, err = Parse(s, pos, b); err != nil {
			return Pair[A, B]{}, pos, err //errtrace:skip
		}
		return res, pos, nil
	})
}

// Tuple3 runs a, b and c in sequence.
// The first failure is returned unchanged, nothing is rolled back.
func Tuple3[A, B, C any](a Rule[A], b Rule[B], c Rule[C]) Rule[Triple[A, B, C]] {
	return RuleFunc[Triple[A, B, C]](func(s string, pos int) (Triple[A, B, C], int, error) {
		var (
			res Triple[A, B, C]
			err error
		)
		if res.First, pos, err = Parse(s, pos, a); err != nil {
			return Triple[A, B, C]{}, pos, err //errtrace:skip
		}
		if res.Second, pos, err = Parse(s, pos, b); err != nil {
			return Triple[A, B, C]{}, pos, err //errtrace:skip
		}
		if res.Third, pos, err = Parse(s, pos, c); err != nil {
			return Triple[A, B, C]{}, pos, err //errtrace:skip
		}
		return res, pos, nil
	})
}

// Map converts the result of r with fn.
func Map[T, U any](r Rule[T], fn func(T) U) Rule[U] {
	return RuleFunc[U](func(s string, pos int) (U, int, error) {
		v, it, err := Parse(s, pos, r)
		if err != nil {
			var zero U
			return zero, pos, err //errtrace:skip
		}
		return fn(v), it, nil
	})
}

// Delim matches the single character c.
// It fails with [ErrUnexpectedEnd] at the end of the span and with kind otherwise.
func Delim(c byte, kind ErrorKind) Rule[Span] {
	return RuleFunc[Span](func(s string, pos int) (Span, int, error) {
		if pos >= len(s) {
			return Span{}, pos, Fail(ErrUnexpectedEnd, pos)
		}
		if s[pos] != c {
			return Span{}, pos, Fail(kind, pos)
		}
		return Span{Offset: pos, Length: 1}, pos + 1, nil
	})
}

// Delimited matches the required delimiter c and then r.
func Delimited[T any](c byte, kind ErrorKind, r Rule[T]) Rule[T] {
	return Map(Tuple2(Delim(c, kind), r), func(p Pair[Span, T]) T { return p.Second })
}

// Part is the optional-delimiter form used for "?query", "#fragment" and ":port".
// It reports absence when c is not at the cursor. Once c has matched,
// errors of r are propagated.
func Part[T any](c byte, r Rule[T]) Rule[Opt[T]] {
	delim := Optional(Delim(c, ErrUnexpectedEnd))
	return RuleFunc[Opt[T]](func(s string, pos int) (Opt[T], int, error) {
		d, it, _ := Parse(s, pos, delim)
		if !d.OK {
			return Opt[T]{}, pos, nil
		}
		v, it, err := Parse(s, it, r)
		if err != nil {
			return Opt[T]{}, pos, err //errtrace:skip
		}
		return Some(v), it, nil
	})
}

// Literal matches the exact string lit.
func Literal(lit string, kind ErrorKind) Rule[Span] {
	return RuleFunc[Span](func(s string, pos int) (Span, int, error) {
		for i := 0; i < len(lit); i++ {
			if pos+i >= len(s) {
				return Span{}, pos, Fail(ErrUnexpectedEnd, pos+i)
			}
			if s[pos+i] != lit[i] {
				return Span{}, pos, Fail(kind, pos+i)
			}
		}
		return Span{Offset: pos, Length: len(lit)}, pos + len(lit), nil
	})
}

// Token matches the longest, possibly empty, run of characters from cs.
func Token(cs CharSet) Rule[Span] {
	return RuleFunc[Span](func(s string, pos int) (Span, int, error) {
		it := cs.Find(s, pos)
		return SpanOf(pos, it), it, nil
	})
}
