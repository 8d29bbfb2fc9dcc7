package lang

import (
	"regexp"
	"strings"
)

// Delimiters of an expression string.
const (
	ExprOpen  = "?["
	ExprClose = "]"
)

var identifier = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

// IsIdentifier reports whether s is a valid mapping key and bare word:
// a letter or underscore followed by letters, digits, or underscores.
func IsIdentifier(s string) bool {
	return identifier.MatchString(s)
}

// TextKind classifies a text scalar for emission.
type TextKind int

const (
	TextLiteral    TextKind = iota // literal
	TextIdentifier                 // identifier
	TextExpression                 // expression
)

// IsExpression reports whether s is delimited by [ExprOpen] and [ExprClose].
func IsExpression(s string) bool {
	return len(s) >= len(ExprOpen)+len(ExprClose) &&
		strings.HasPrefix(s, ExprOpen) &&
		strings.HasSuffix(s, ExprClose)
}

// ClassifyText returns the emission class of s. Expressions take precedence
// over identifiers; everything else is a literal.
func ClassifyText(s string) TextKind {
	switch {
	case IsExpression(s):
		return TextExpression
	case IsIdentifier(s):
		return TextIdentifier
	default:
		return TextLiteral
	}
}

// exprBody strips the expression delimiters from s if present.
func exprBody(s string) string {
	if IsExpression(s) {
		return s[len(ExprOpen) : len(s)-len(ExprClose)]
	}

	return s
}

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote returns s wrapped in double quotes with backslash escapes applied.
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
