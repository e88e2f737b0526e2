package grammar_test

import (
	"testing"

	"github.com/ghettovoice/gouri/internal/grammar"
)

func TestCharSet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		cs    grammar.CharSet
		in    string
		notIn string
	}{
		{"alpha", grammar.Alpha, "azAZ", "09-@[`{"},
		{"digit", grammar.Digit, "0123456789", "/:aZ"},
		{"hexdig", grammar.HexDig, "09afAF", "gG-"},
		{"unreserved", grammar.Unreserved, "aZ0-._~", "%!/:@ \x00\x80\xff"},
		{"sub-delims", grammar.SubDelims, "!$&'()*+,;=", "/?#[]@:"},
		{"pchars", grammar.PChars, "a:@!=", "/?#[]% "},
		{"segment-nc", grammar.SegmentNCChars, "a@!=", ":/?"},
		{"query", grammar.QueryChars, "a/?:@", "#[] "},
		{"params", grammar.ParamChars, "a/?:@;", "&=+#"},
		{"with", grammar.NewCharSet("ab").With("c"), "abc", "d"},
		{"without", grammar.Alpha.Without("xX"), "ayAY", "xX"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			for i := 0; i < len(c.in); i++ {
				if !c.cs.Contains(c.in[i]) {
					t.Errorf("set.Contains(%q) = false, want true", c.in[i])
				}
			}
			for i := 0; i < len(c.notIn); i++ {
				if c.cs.Contains(c.notIn[i]) {
					t.Errorf("set.Contains(%q) = true, want false", c.notIn[i])
				}
			}
		})
	}
}

func TestCharSet_Find(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		pos  int
		want int
	}{
		{"", 0, 0},
		{"abc", 0, 3},
		{"ab1c", 0, 2},
		{"ab1c", 3, 4},
		{"1abc", 0, 0},
	}

	for _, c := range cases {
		if got := grammar.Alpha.Find(c.str, c.pos); got != c.want {
			t.Errorf("grammar.Alpha.Find(%q, %d) = %d, want %d", c.str, c.pos, got, c.want)
		}
	}
}
