// Package taylor compiles expressions in one variable into Taylor
// polynomials.
//
// An expression is written the way you'd write it in your notes: "x", numeric
// constants, + - * / ^ (right-associative), brackets, and the functions sin,
// cos, tg, ctg, ln, e^, sqrt, atg, actg, asin, and acos. A function binds
// more tightly than any operator, so "sin x^2" is "(sin x)^2", while unary
// minus binds more loosely than ^, so "-x^2" is "-(x^2)". Multiplication is
// never implicit.
//
// Parse produces an Expr. An Evaluator expands an Expr about a point into a
// series.Series, coefficients of powers of x minus the point up to a chosen
// degree. A Context evaluates the same Expr directly at a point with
// math/big, which is useful to check how good a polynomial is.
package taylor
