package uri_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/gouri/uri"
)

func mustParse(tb testing.TB, s string, g uri.Grammar) *uri.URL {
	tb.Helper()

	u, err := uri.Parse(s, g, nil)
	if err != nil {
		tb.Fatalf("uri.Parse(%q, %s) error = %v, want nil", s, g, err)
	}
	return u
}

func TestURL_Userinfo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                         string
		input                        string
		wantUser, wantPass           string
		wantEncUser, wantEncPass     string
		wantHasUserinfo, wantHasPass bool
	}{
		{"user and password", "http://alice:s%3Acret@h/", "alice", "s:cret", "alice", "s%3Acret", true, true},
		{"user only", "ftp://b%C3%B6b@h/", "böb", "", "b%C3%B6b", "", true, false},
		{"empty password", "ftp://u:@h/", "u", "", "u", "", true, true},
		{"empty userinfo", "ftp://@h/", "", "", "", "", true, false},
		{"no userinfo", "ftp://h/", "", "", "", "", false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u := mustParse(t, c.input, uri.GrammarURI)
			if got := u.HasUserinfo(); got != c.wantHasUserinfo {
				t.Errorf("u.HasUserinfo() = %v, want %v", got, c.wantHasUserinfo)
			}
			if got := u.HasPassword(); got != c.wantHasPass {
				t.Errorf("u.HasPassword() = %v, want %v", got, c.wantHasPass)
			}
			if got := u.User(); got != c.wantUser {
				t.Errorf("u.User() = %q, want %q", got, c.wantUser)
			}
			if got := u.Password(); got != c.wantPass {
				t.Errorf("u.Password() = %q, want %q", got, c.wantPass)
			}
			if got := u.EncodedUser(); got != c.wantEncUser {
				t.Errorf("u.EncodedUser() = %q, want %q", got, c.wantEncUser)
			}
			if got := u.EncodedPassword(); got != c.wantEncPass {
				t.Errorf("u.EncodedPassword() = %q, want %q", got, c.wantEncPass)
			}
		})
	}
}

func TestURL_Host(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input       string
		wantKind    uri.HostKind
		wantHost    string
		wantAddr    string
		wantEncAddr string
		wantDomain  bool
	}{
		{"http://Example.COM/", uri.HostName, "Example.COM", "Example.COM", "Example.COM", true},
		{"http://ex%41mple.com/", uri.HostName, "exAmple.com", "exAmple.com", "ex%41mple.com", true},
		{"http://a..b/", uri.HostName, "a..b", "a..b", "a..b", false},
		{"http://127.0.0.1:80/", uri.HostIPv4, "127.0.0.1", "127.0.0.1", "127.0.0.1", false},
		{"http://[2001:db8::1]/", uri.HostIPv6, "[2001:db8::1]", "2001:db8::1", "2001:db8::1", false},
		{"http://[v7.fe]/", uri.HostIPvFuture, "[v7.fe]", "v7.fe", "v7.fe", false},
		{"file:///etc", uri.HostName, "", "", "", false},
		{"mailto:a@b", uri.HostNone, "", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			u := mustParse(t, c.input, uri.GrammarURI)
			if got := u.HostKind(); got != c.wantKind {
				t.Errorf("u.HostKind() = %v, want %v", got, c.wantKind)
			}
			if got := u.Host(); got != c.wantHost {
				t.Errorf("u.Host() = %q, want %q", got, c.wantHost)
			}
			if got := u.HostAddress(); got != c.wantAddr {
				t.Errorf("u.HostAddress() = %q, want %q", got, c.wantAddr)
			}
			if got := u.EncodedHostAddress(); got != c.wantEncAddr {
				t.Errorf("u.EncodedHostAddress() = %q, want %q", got, c.wantEncAddr)
			}
			if got := u.IsDomainName(); got != c.wantDomain {
				t.Errorf("u.IsDomainName() = %v, want %v", got, c.wantDomain)
			}
		})
	}
}

func TestURL_PortNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		wantHas bool
		wantNum uint16
		wantOK  bool
	}{
		{"http://h:8080/", true, 8080, true},
		{"http://h:0080/", true, 80, true},
		{"http://h:65535/", true, 65535, true},
		{"http://h:65536/", true, 0, false},
		{"http://h:/", true, 0, false},
		{"http://h/", false, 0, false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			u := mustParse(t, c.input, uri.GrammarURI)
			if got := u.HasPort(); got != c.wantHas {
				t.Errorf("u.HasPort() = %v, want %v", got, c.wantHas)
			}
			if n, ok := u.PortNumber(); n != c.wantNum || ok != c.wantOK {
				t.Errorf("u.PortNumber() = %d, %v, want %d, %v", n, ok, c.wantNum, c.wantOK)
			}
		})
	}
}

func TestURL_Component(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "s://u@h:1/p?q#f", uri.GrammarURI)
	want := map[uri.Component]uri.Span{
		uri.ComponentScheme:    {Present: true, Offset: 0, Length: 1},
		uri.ComponentAuthority: {Present: true, Offset: 4, Length: 5},
		uri.ComponentUserinfo:  {Present: true, Offset: 4, Length: 1},
		uri.ComponentHost:      {Present: true, Offset: 6, Length: 1},
		uri.ComponentPort:      {Present: true, Offset: 8, Length: 1},
		uri.ComponentPath:      {Present: true, Offset: 9, Length: 2},
		uri.ComponentQuery:     {Present: true, Offset: 12, Length: 1},
		uri.ComponentFragment:  {Present: true, Offset: 14, Length: 1},
	}
	for k, sp := range want {
		if got := u.Component(k); got != sp {
			t.Errorf("u.Component(%s) = %+v, want %+v", k, got, sp)
		}
	}
	if got := u.Component(uri.Component(42)); got != (uri.Span{}) {
		t.Errorf("u.Component(42) = %+v, want zero span", got)
	}

	var nilURL *uri.URL
	if got := nilURL.Component(uri.ComponentPath); got != (uri.Span{}) {
		t.Errorf("nil.Component(path) = %+v, want zero span", got)
	}
	if nilURL.HasScheme() || nilURL.HasAuthority() || nilURL.String() != "" {
		t.Error("nil URL must be empty")
	}
}

func TestURL_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input   string
		grammar uri.Grammar
		want    string
	}{
		{"HTTP://h/a%2fb?x#y", uri.GrammarURI, "HTTP://h/a%2fb?x#y"},
		{"s://u:p@[::1]:5?#", uri.GrammarURI, "s://u:p@[::1]:5?#"},
		{"//h", uri.GrammarURIReference, "//h"},
		{"", uri.GrammarURIReference, ""},
		{"u@h:1", uri.GrammarAuthority, "u@h:1"},
		{"/p?", uri.GrammarOriginForm, "/p?"},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			u := mustParse(t, c.input, c.grammar)
			if got := u.Render(); got != c.want {
				t.Errorf("u.Render() = %q, want %q", got, c.want)
			}
			if got := u.String(); got != c.want {
				t.Errorf("u.String() = %q, want %q", got, c.want)
			}
			if got := u.Buffer(); got != c.input {
				t.Errorf("u.Buffer() = %q, want %q", got, c.input)
			}
		})
	}
}

func TestURL_Format(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "http://h/p", uri.GrammarURI)
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "http://h/p"},
		{"%+s", "http://h/p"},
		{"%q", `"http://h/p"`},
		{"[%s]", "[http://h/p]"},
	}
	for _, c := range cases {
		if got := fmt.Sprintf(c.format, u); got != c.want {
			t.Errorf("fmt.Sprintf(%q, u) = %q, want %q", c.format, got, c.want)
		}
	}
}

func TestURL_LogValue(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "https://[::1]:8443/a/b?x=1#f", uri.GrammarURI)
	got := make(map[string]string)
	for _, a := range u.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}
	want := map[string]string{
		"scheme":    "https",
		"host":      "[::1]",
		"host_kind": "ipv6",
		"port":      "8443",
		"path":      "/a/b",
		"segments":  "2",
		"query":     "x=1",
		"params":    "1",
		"fragment":  "f",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("u.LogValue() = %v, want %v\ndiff (-got +want):\n%v", got, want, diff)
	}

	var nilURL *uri.URL
	if k := nilURL.LogValue().Kind(); k == slog.KindGroup {
		t.Errorf("nil.LogValue().Kind() = %v, want empty value", k)
	}
}

func TestURL_Persist(t *testing.T) {
	t.Parallel()

	u := mustParse(t, "http://h/p?q", uri.GrammarURI)
	p := u.Persist()
	if p == u {
		t.Fatal("u.Persist() returned the same URL")
	}
	if got, want := p.String(), u.String(); got != want {
		t.Errorf("p.String() = %q, want %q", got, want)
	}
	if got, want := p.Component(uri.ComponentQuery), u.Component(uri.ComponentQuery); got != want {
		t.Errorf("p.Component(query) = %+v, want %+v", got, want)
	}
}

func TestURL_Text(t *testing.T) {
	t.Parallel()

	type doc struct {
		Link *uri.URL `json:"link"`
	}

	in := doc{Link: mustParse(t, "http://h/a?b#c", uri.GrammarURI)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v, want nil", err)
	}
	if got, want := string(data), `{"link":"http://h/a?b#c"}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	var out doc
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, want nil", err)
	}
	if diff := cmp.Diff(summarize(out.Link), summarize(in.Link)); diff != "" {
		t.Errorf("json.Unmarshal() = %v, want %v\ndiff (-got +want):\n%v", out.Link, in.Link, diff)
	}

	if err := json.Unmarshal([]byte(`{"link":"a b"}`), &out); err == nil {
		t.Error("json.Unmarshal(\"a b\") error = nil, want error")
	}
}
