package expression

// parseState is the kind of token most recently accepted by the evaluator.
// It decides whether the next token is legal.
type parseState int

const (
	stateStart parseState = iota
	stateNumber
	stateOperator
	stateOpenParen
	stateCloseParen
	stateUnary
)

func (s parseState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateNumber:
		return "number"
	case stateOperator:
		return "operator"
	case stateOpenParen:
		return "open paren"
	case stateCloseParen:
		return "close paren"
	case stateUnary:
		return "unary operator"
	}
	return "invalid"
}

// expectsOperand reports whether the next token must begin an operand: a
// number, an open parenthesis, or a unary sign.
func (s parseState) expectsOperand() bool {
	switch s {
	case stateStart, stateOperator, stateOpenParen, stateUnary:
		return true
	}
	return false
}

// endsOperand reports whether an operand has just been completed, so that a
// binary operator, a close parenthesis or the end of input may follow.
func (s parseState) endsOperand() bool {
	return s == stateNumber || s == stateCloseParen
}
