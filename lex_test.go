package calculator

import (
	"errors"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		idents bool
		tokens []lexToken
	}{
		// spaces
		{"", true, nil},
		{" \t \r\n ", true, nil},
		{"\x00\x1f 1", true, []lexToken{{text: "1", kind: tokenNum, pos: 4}}},
		// numbers
		{"0", true, []lexToken{{text: "0", kind: tokenNum, pos: 1}}},
		{"9876543210", true, []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}},
		{"1 0", true, []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}},
		{"1.0", true, []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}},
		{".5", true, []lexToken{{text: ".5", kind: tokenNum, pos: 1}}},
		{"1.1.1", true, []lexToken{{text: "1.1.1", kind: tokenNum, pos: 1}}},
		{"-1", true, []lexToken{{text: "-", kind: tokenSym, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}},
		{"1e5", true, []lexToken{{text: "1e5", kind: tokenNum, pos: 1}}},
		{"1e-5", true, []lexToken{{text: "1e", kind: tokenNum, pos: 1}, {text: "-", kind: tokenSym, pos: 3}, {text: "5", kind: tokenNum, pos: 4}}},
		{"1a", true, []lexToken{{text: "1a", kind: tokenNum, pos: 1}}},
		// identifiers
		{"sin", true, []lexToken{{text: "sin", kind: tokenIdent, pos: 1}}},
		{"RounD", true, []lexToken{{text: "RounD", kind: tokenIdent, pos: 1}}},
		{"a1.b", true, []lexToken{{text: "a1.b", kind: tokenIdent, pos: 1}}},
		{"sin(1)", true, []lexToken{
			{text: "sin", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenSym, pos: 4},
			{text: "1", kind: tokenNum, pos: 5},
			{text: ")", kind: tokenSym, pos: 6},
		}},
		{"if(1, 2)", true, []lexToken{
			{text: "if", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenSym, pos: 3},
			{text: "1", kind: tokenNum, pos: 4},
			{text: ",", kind: tokenSym, pos: 5},
			{text: "2", kind: tokenNum, pos: 7},
			{text: ")", kind: tokenSym, pos: 8},
		}},
		// symbols
		{"+", true, []lexToken{{text: "+", kind: tokenSym, pos: 1}}},
		{"++", true, []lexToken{{text: "+", kind: tokenSym, pos: 1}, {text: "+", kind: tokenSym, pos: 2}}},
		{"1*0", true, []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenSym, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}},
		{"$", true, []lexToken{{text: "$", kind: tokenSym, pos: 1}}},
		{"π", true, []lexToken{{text: "π", kind: tokenSym, pos: 1}}},
		{"_x", true, []lexToken{{text: "_", kind: tokenSym, pos: 1}, {text: "x", kind: tokenIdent, pos: 2}}},
		// numeric only
		{"sin", false, []lexToken{{text: "s", kind: tokenSym, pos: 1}, {text: "i", kind: tokenSym, pos: 2}, {text: "n", kind: tokenSym, pos: 3}}},
		{"1e5", false, []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "e", kind: tokenSym, pos: 2}, {text: "5", kind: tokenNum, pos: 3}}},
		{"2.5", false, []lexToken{{text: "2.5", kind: tokenNum, pos: 1}}},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src), c.idents)
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		// EOF repeats once reached.
		for i := 0; i < 2; i++ {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
			if got.kind != tokenEOF {
				t.Errorf("scanning %q: extra token %v", c.src, got)
			}
		}
	}
}

type brokenReader struct {
	*strings.Reader
}

var errBroken = errors.New("broken")

func (r brokenReader) ReadRune() (rune, int, error) {
	c, sz, err := r.Reader.ReadRune()
	if c == '!' {
		return 0, 0, errBroken
	}
	return c, sz, err
}

func TestLexReadError(t *testing.T) {
	scan := lex(brokenReader{strings.NewReader("12!")}, true)
	_, err := scan.next()
	var lerr *LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("want LexError, got %v", err)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("%v doesn't unwrap to the read error", err)
	}
	if lerr.Text != "12" {
		t.Errorf("want text %q, got %q", "12", lerr.Text)
	}
}
