package expression

import (
	"math"
	"strconv"
)

// opEntry is an operator stack entry. Open parentheses are stored with sym
// '(' and sit below the operators they enclose.
type opEntry struct {
	sym byte
	// unary marks a sign rewritten as a binary operation against zero.
	unary bool
	col   int
}

func precedence(op byte) int {
	switch op {
	case '*', '/':
		return 2
	case '+', '-':
		return 1
	}
	return 0
}

// precedence ranks a unary sign above every binary operator so that it is
// applied to its operand before anything to its left, e.g. "2/-3*4".
func (e opEntry) precedence() int {
	if e.unary {
		return 3
	}
	return precedence(e.sym)
}

type evaluator struct {
	ops  stack[opEntry]
	nums stack[float64]
}

// Evaluate computes the value of an arithmetic expression. The result is not
// rounded; use Format or Round for display.
//
// Errors are *Error values and match the Err* sentinels with errors.Is.
func Evaluate(expression string) (float64, error) {
	if err := Validate(expression); err != nil {
		return 0, err
	}

	var ev evaluator
	sc := scanner{src: expression}
	state := stateStart
	for {
		tok, err := sc.next()
		if err != nil {
			return 0, err
		}
		if tok.kind == tokenEOF {
			if !state.endsOperand() {
				return 0, errorAt(MalformedExpression, tok.col, "unexpected end of expression after "+state.String())
			}
			break
		}
		state, err = ev.accept(state, tok)
		if err != nil {
			return 0, err
		}
	}
	return ev.finish()
}

// accept applies one token and returns the new state.
func (ev *evaluator) accept(state parseState, tok token) (parseState, error) {
	switch tok.kind {
	case tokenNumber:
		if !state.expectsOperand() {
			return state, errorAt(MalformedExpression, tok.col, "unexpected number after "+state.String())
		}
		ev.nums.push(tok.value)
		return stateNumber, nil

	case tokenOpen:
		if !state.expectsOperand() {
			return state, errorAt(MalformedExpression, tok.col, `unexpected "(" after `+state.String())
		}
		ev.ops.push(opEntry{sym: '(', col: tok.col})
		return stateOpenParen, nil

	case tokenClose:
		if !state.endsOperand() {
			return state, errorAt(MalformedExpression, tok.col, `unexpected ")" after `+state.String())
		}
		for {
			top, ok := ev.ops.peek()
			if !ok {
				return state, errorAt(MalformedExpression, tok.col, `mismatched parentheses: ")" without "("`)
			}
			if top.sym == '(' {
				ev.ops.pop()
				return stateCloseParen, nil
			}
			if err := ev.reduceTop(); err != nil {
				return state, err
			}
		}

	case tokenOperator:
		if state.expectsOperand() {
			if tok.op != '+' && tok.op != '-' {
				return state, errorAt(MalformedExpression, tok.col, "unexpected operator "+strconv.Quote(string(tok.op))+" after "+state.String())
			}
			ev.nums.push(0)
			ev.ops.push(opEntry{sym: tok.op, unary: true, col: tok.col})
			return stateUnary, nil
		}
		p := precedence(tok.op)
		for {
			top, ok := ev.ops.peek()
			if !ok || top.precedence() < p {
				break
			}
			if err := ev.reduceTop(); err != nil {
				return state, err
			}
		}
		ev.ops.push(opEntry{sym: tok.op, col: tok.col})
		return stateOperator, nil
	}
	return state, errorAt(MalformedExpression, tok.col, "unexpected token "+tok.String())
}

// reduceTop pops one operator and its two operands and pushes the result.
func (ev *evaluator) reduceTop() error {
	op, ok := ev.ops.pop()
	if !ok {
		return errorAt(MalformedExpression, 0, "missing operator")
	}
	if op.sym == '(' || op.sym == ')' {
		return errorAt(MalformedExpression, op.col, `mismatched parentheses: unclosed "("`)
	}
	b, okb := ev.nums.pop()
	a, oka := ev.nums.pop()
	if !oka || !okb {
		return errorAt(MalformedExpression, op.col, "missing operand for "+strconv.Quote(string(op.sym)))
	}
	v, err := Apply(op.sym, a, b)
	if err != nil {
		return err
	}
	ev.nums.push(v)
	return nil
}

// finish reduces everything left on the stacks.
func (ev *evaluator) finish() (float64, error) {
	for ev.ops.len() > 0 {
		if err := ev.reduceTop(); err != nil {
			return 0, err
		}
	}
	if ev.nums.len() != 1 {
		return 0, errorAt(MalformedExpression, 0, "expected a single result, have "+strconv.Itoa(ev.nums.len())+" operands")
	}
	v, _ := ev.nums.pop()
	if err := Finite(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Apply computes a op b for one of + - * /. Division by zero is not an error
// here; it yields an infinity or NaN which Finite rejects.
func Apply(op byte, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		return a / b, nil
	}
	return 0, errorAt(MalformedExpression, 0, "unknown operator "+strconv.Quote(string(op)))
}

// Finite returns a DivisionByZero error if v is infinite or NaN.
func Finite(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return errorAt(DivisionByZero, 0, "division by zero")
	}
	return nil
}
