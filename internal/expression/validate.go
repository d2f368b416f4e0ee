package expression

import (
	"strconv"
	"unicode/utf8"
)

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAllowed(c byte) bool {
	return isDigit(c) || isOperator(c) || isSpace(c) ||
		c == '.' || c == '(' || c == ')'
}

// Valid reports whether expression passes the pre-scan checks. A valid
// expression may still fail to evaluate.
func Valid(expression string) bool {
	return Validate(expression) == nil
}

// Validate rejects blank input, characters outside the expression alphabet
// and directly repeated operator characters such as "**". It does not check
// grammar; Evaluate does that while scanning.
func Validate(expression string) error {
	blank := true
	for i := 0; i < len(expression); i++ {
		c := expression[i]
		if !isAllowed(c) {
			r, _ := utf8.DecodeRuneInString(expression[i:])
			return errorAt(InvalidCharacter, i+1, "invalid character "+strconv.QuoteRune(r))
		}
		if !isSpace(c) {
			blank = false
		}
		if i > 0 && isOperator(c) && expression[i-1] == c {
			return errorAt(MalformedExpression, i+1, "repeated operator "+strconv.Quote(expression[i-1:i+1]))
		}
	}
	if blank {
		return errorAt(MalformedExpression, 0, "empty expression")
	}
	return nil
}
