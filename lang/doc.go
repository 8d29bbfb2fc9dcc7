// Package lang translates hierarchical data into the cfgl configuration
// dialect.
//
// A document is decoded into a tree of [Value] nodes. Each node is one of four
// kinds: [KindNumber], [KindText], [KindSequence], or [KindMapping]. The tree
// is then rendered by a [Converter] into dialect text.
//
// # Dialect
//
// Top-level mapping entries are written one per line:
//
//	port = 8080
//	hosts = ( alpha beta )
//	server {
//	  name = "example.com"
//	  tls {
//	    enabled = true
//	  }
//	}
//
// Scalar and sequence entries use "key = value"; mapping entries use
// "key { ... }". Nested entries are indented two spaces per level and the
// closing brace is aligned with the line that opened the block. Sequences are
// written "( a b c )" on a single line.
//
// Numbers and bare identifiers are written verbatim. Every other string is
// double-quoted with backslash escapes for '\\', '"', newline, carriage return,
// and tab.
//
// # Expressions
//
// A string of the form "?[ ... ]" is an expression. Its body is evaluated and
// the result replaces the string in the output. The grammar is closed:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = [ "+" | "-" ] primary
//	primary = number | string | identifier | call | "(" expr ")"
//	call    = ( "mod" | "concat" ) "(" [ arg { "," arg } ] ")"
//	arg     = expr | "[" [ expr { "," expr } ] "]"
//
// Identifiers resolve against the [Variables] extracted from the scalar
// entries of the top-level mapping. Nothing else is in scope: member access,
// comparisons, conditionals, and every other function are rejected before
// evaluation.
//
//	base: 8000
//	offset: 80
//	port: ?[base + offset]          # port = 8080
//	shard: ?[mod(base, 3)]          # shard = 2
//	greeting: ?[concat('hi', ' ', 'there')]
//
// The expression source is parsed with [github.com/expr-lang/expr/parser] and
// interpreted by this package. Compiled programs are cached by source text.
//
// # Errors
//
// Every failure is reported as an [*Error]. Use [errors.Is] with the sentinel
// values (for example [ErrInvalidKey] or [ErrUnresolved]) to classify it, and
// [Error.Expression] to recover the expression that failed.
package lang
