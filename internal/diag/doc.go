// Package diag defines the diagnostic model shared by the lexer, parser,
// dependency checks and code generator.
//
// A Diagnostic is plain data: severity, numeric Code, message, primary span
// and optional notes. Phases emit through a Reporter; BagReporter collects
// into a Bag which the driver sorts and hands to internal/diagfmt.
//
// The compiler is fail-fast. Every phase stops at its first error and
// returns it as an *Error, which carries the same code and span as the
// diagnostic it reported, so callers can match on the kind with errors.As
// while the CLI still renders a located message.
package diag
