// Package calculator implements a spreadsheet-style decimal calculator.
//
// Expressions are numbers joined by the operators + - * / and ^, with
// parentheses, unary signs, and calls of registered functions such as
// "IF(1, ROUND(SIN(5), 2), 0)". Function names are case-insensitive. The usual
// precedence applies, and operators of equal precedence associate left to
// right, including ^.
//
// Arithmetic uses arbitrary-precision decimals. Addition, subtraction, and
// multiplication are exact; division and irrational results keep at most
// Scale fractional digits, rounding half away from zero.
//
// Calculate reports failures as error tokens instead of Go errors:
// "#SYNTAXERROR" for input that does not parse, "#DIV0" for division by zero,
// and "#ERROR(message)" for anything else. Parse and Eval give the underlying
// errors to callers who want them.
//
package calculator
