package ioutil_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/gouri/internal/ioutil"
)

var errWrite = errors.New("write failed")

// limitWriter fails once more than limit bytes are written.
type limitWriter struct {
	limit int
	buf   bytes.Buffer
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	room := lw.limit - lw.buf.Len()
	if room >= len(p) {
		return lw.buf.Write(p)
	}
	if room > 0 {
		lw.buf.Write(p[:room])
	} else {
		room = 0
	}
	return room, errWrite
}

type writeResult struct {
	Out string
	Num int
	Err error
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		limit int
		want  writeResult
	}{
		{"ok", 100, writeResult{"http://h:80/p", 13, nil}},
		{"fails inside call", 9, writeResult{"http://h:", 9, errWrite}},
		{"fails on first write", 2, writeResult{"ht", 2, errWrite}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			lw := &limitWriter{limit: c.limit}
			cw := ioutil.GetCountingWriter(lw)
			defer ioutil.FreeCountingWriter(cw)

			cw.WriteStrings("http", ":", "", "//")
			cw.Call(func(w io.Writer) (int, error) {
				return ioutil.NewCountingWriter(w).WriteStrings("h", ":", "80").Result()
			})
			cw.Write([]byte("/p")) //nolint:errcheck

			num, err := cw.Result()
			got := writeResult{lw.buf.String(), num, err}
			if diff := cmp.Diff(got, c.want, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("result = %+v, want %+v\ndiff (-got +want):\n%v", got, c.want, diff)
			}
		})
	}
}

func TestCountingWriter_StopsAfterError(t *testing.T) {
	t.Parallel()

	lw := &limitWriter{limit: 1}
	cw := ioutil.NewCountingWriter(lw)
	if n, err := cw.WriteString("ab"); n != 1 || !errors.Is(err, errWrite) {
		t.Fatalf("cw.WriteString(\"ab\") = %d, %v, want 1, %v", n, err, errWrite)
	}

	called := false
	cw.Call(func(io.Writer) (int, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Error("cw.Call() invoked the function after a failed write")
	}
	if n, err := cw.WriteString("c"); n != 0 || !errors.Is(err, errWrite) {
		t.Errorf("cw.WriteString(\"c\") = %d, %v, want 0, %v", n, err, errWrite)
	}
}
