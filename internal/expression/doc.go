// Package expression evaluates arithmetic expressions such as "1 + (2 - 3) * 2".
//
// Expressions are made of decimal numbers, the binary operators + - * /,
// unary + and -, parentheses and whitespace. Evaluation is a single
// left-to-right pass over the input using an operator stack and an operand
// stack. Intermediate division by zero produces an infinity which may still
// cancel out, as in "1/(1/0)"; only a non-finite final result is an error.
//
// The package holds no global state and every function is safe for
// concurrent use.
package expression
