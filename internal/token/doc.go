// Package token defines lexical token kinds for CDL sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Token.Value is the literal payload: identifier text, integer digits
//     without the radix prefix, vector digits without quotes.
//   - `<=` and `:` have two kinds each; which one the lexer produces
//     depends on the scope the parser selected, never on the token itself.
package token
