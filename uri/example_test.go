package uri_test

import (
	"errors"
	"fmt"

	"github.com/ghettovoice/gouri/uri"
)

func ExampleParseURI() {
	u, err := uri.ParseURI("https://alice@example.com:8443/docs/a%20b?lang=en#intro")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(u.Scheme())
	fmt.Println(u.User())
	fmt.Println(u.Host())
	fmt.Println(u.PortNumber())
	fmt.Println(u.Path())
	fmt.Println(u.Fragment())
	// Output:
	// https
	// alice
	// example.com
	// 8443 true
	// /docs/a b
	// intro
}

func ExampleParse_error() {
	_, err := uri.Parse("http://ex ample.com/", uri.GrammarURI, nil)

	var e *uri.Error
	if errors.As(err, &e) {
		fmt.Println(e.Kind)
		fmt.Println(e.Offset)
	}
	fmt.Println(errors.Is(err, uri.ErrInvalidHost))
	// Output:
	// invalid host
	// 9
	// true
}

func ExampleURL_Segments() {
	u, _ := uri.ParseOriginForm("/files/a%2Fb/c")
	for seg := range u.Segments().All() {
		fmt.Printf("%q\n", seg)
	}
	// Output:
	// "files"
	// "a/b"
	// "c"
}

func ExampleURL_Params() {
	u, _ := uri.ParseRelativeRef("?q=go+uri&page=2&raw")
	params := u.Params().SpaceAsPlus()
	for p := range params.All() {
		fmt.Printf("%s=%q %v\n", p.Key, p.Value, p.HasValue)
	}
	q, _ := params.Get("q")
	fmt.Println(q)
	// Output:
	// q="go uri" true
	// page="2" true
	// raw="" false
	// go uri
}

func ExampleTracer() {
	tr := uri.NewTracer()
	_, _ = uri.Parse("a:b?c", uri.GrammarURI, &uri.ParseOptions{Observer: tr})
	for _, st := range tr.Steps() {
		fmt.Println(st.State, st.Offset)
	}
	// Output:
	// start 0
	// scheme 0
	// authority-and-path 2
	// query 3
	// done 5
}

func ExampleEncode() {
	fmt.Println(uri.Encode("a b/c?d", uri.SegmentChars))
	// Output:
	// a%20b%2Fc%3Fd
}
