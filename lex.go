package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a word starting with a digit or the decimal separator.
	tokenNum
	// tokenIdent is a word starting with a letter, i.e. a function name.
	tokenIdent
	// tokenSym is any other single rune: operators, brackets, separators,
	// and anything the parser will reject.
	tokenSym
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenSym:
		return "Sym"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DecimalSeparator is the rune that separates integer and fractional digits in
// number literals.
const DecimalSeparator = '.'

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
	// idents is whether ASCII letters are word runes.
	idents bool
}

func lex(src io.RuneScanner, idents bool) *lexer {
	return &lexer{
		src:    src,
		rune:   1,
		idents: idents,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// isSpace reports whether r is whitespace. Every control code and the space
// character count, nothing else does.
func isSpace(r rune) bool {
	return 0 <= r && r <= ' '
}

func (l *lexer) isWord(r rune) bool {
	switch {
	case '0' <= r && r <= '9', r == DecimalSeparator:
		return true
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		return l.idents
	default:
		return false
	}
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	tok := lexToken{pos: l.rune}
	if l.eof {
		tok.kind = tokenEOF
		return tok, nil
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, &LexError{Text: l.buf.String(), Col: l.rune, Err: err}
		}
		switch {
		case isSpace(r):
			tok.pos++
			continue
		case l.isWord(r):
			l.unreadRune()
			if err := l.scanWord(); err != nil {
				return tok, &LexError{Text: l.buf.String(), Col: l.rune, Err: err}
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			if c := tok.text[0]; '0' <= c && c <= '9' || c == DecimalSeparator {
				tok.kind = tokenNum
			}
			return tok, nil
		default:
			tok.text = string(r)
			tok.kind = tokenSym
			return tok, nil
		}
	}
}

// scanWord scans a maximal run of word runes into the buffer.
func (l *lexer) scanWord() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides word scanning before
				// calling scanWord, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !l.isWord(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}
