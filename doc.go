// Package arith implements a calculator for integer and floating-point
// arithmetic expressions.
//
// Input is read as a stream of bytes, split into tokens, parsed into a tree,
// and evaluated. The grammar is
//
//	expr   = term { ('+' | '-') term }
//	term   = factor { ('*' | '/' | '^') factor }
//	factor = literal | '(' expr ')' | '-' factor
//
// so "^" shares the precedence of "*" and "/", negation binds tighter than any
// binary operator, and operators of equal precedence group to the left unless
// the RightAssociative option is given. "2 ^ 3 ^ 2" is 64, and "-2 ^ 2" is 4.
//
// Literals without a decimal point are integers. Arithmetic on two integers
// gives an integer, except that division always gives a float. Any operation
// with a float operand gives a float. Overflow, division by zero, and other
// invalid operations are reported as an *ArithmeticError rather than
// producing a wrapped or infinite result.
//
// The lexer does not stop at bad input. Unrecognized characters become
// tokens which the parser rejects, and malformed literals such as "3..4" are
// recorded in an error log that can be inspected after lexing.
package arith
