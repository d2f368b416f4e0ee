package expression

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenOperator
	tokenOpen
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenNumber:
		return "Number"
	case tokenOperator:
		return "Operator"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	}
	return "tokenKind(" + strconv.Itoa(int(k)) + ")"
}

type token struct {
	kind  tokenKind
	value float64
	op    byte
	// col is the 1-based byte position of the token's first character.
	col int
}

func (t token) String() string {
	switch t.kind {
	case tokenNumber:
		return t.kind.String() + ":" + strconv.FormatFloat(t.value, 'g', -1, 64) + "@" + strconv.Itoa(t.col)
	case tokenOperator:
		return t.kind.String() + ":" + string(t.op) + "@" + strconv.Itoa(t.col)
	}
	return t.kind.String() + "@" + strconv.Itoa(t.col)
}

// scanner splits an expression into tokens. It does not track grammar.
type scanner struct {
	src string
	pos int
}

// next returns the next token, or a token of kind tokenEOF once the input is
// exhausted.
func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return token{kind: tokenEOF, col: len(s.src) + 1}, nil
	}
	col := s.pos + 1
	c := s.src[s.pos]
	switch {
	case isDigit(c) || c == '.':
		return s.number()
	case isOperator(c):
		s.pos++
		return token{kind: tokenOperator, op: c, col: col}, nil
	case c == '(':
		s.pos++
		return token{kind: tokenOpen, col: col}, nil
	case c == ')':
		s.pos++
		return token{kind: tokenClose, col: col}, nil
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return token{}, errorAt(InvalidCharacter, col, "invalid character "+strconv.QuoteRune(r))
}

// number scans a maximal run of digits and decimal points.
func (s *scanner) number() (token, error) {
	start := s.pos
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.pos++
	}
	text := s.src[start:s.pos]
	col := start + 1
	if strings.Count(text, ".") > 1 {
		return token{}, errorAt(MalformedNumber, col, "too many decimal points in "+strconv.Quote(text))
	}
	if text == "." {
		return token{kind: tokenNumber, col: col}, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, errorAt(MalformedNumber, col, "number "+strconv.Quote(text)+" out of range")
	}
	return token{kind: tokenNumber, value: v, col: col}, nil
}
