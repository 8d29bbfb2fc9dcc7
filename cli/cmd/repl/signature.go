package repl

import (
	"strings"

	"github.com/ardnew/cfgl/lang"
)

// functionCall describes the innermost call enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

func isNameRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// detectFunctionCall finds the innermost unclosed call before cursor and the
// index of the argument being typed.
func detectFunctionCall(input []rune, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')', ']':
			depth++
		case '(', '[':
			if depth == 0 {
				if input[i] == '(' {
					open = i
				} else {
					// Inside a list literal, not an argument list.
					return functionCall{}
				}
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 && isNameRune(input[start-1]) {
		start--
	}

	name := string(input[start:open])
	if name == "" {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// signatureHint renders the signature of the named function with the
// parameter at argIndex highlighted, or "" for an unknown function.
func signatureHint(name string, argIndex int) string {
	signature, params, ok := lang.FunctionSignature(name)
	if !ok {
		return ""
	}

	return renderSignatureHint(signature, params, argIndex)
}

// renderSignatureHint renders signature ("name(a, b)") with the parameter at
// currentArgIdx highlighted. A variadic parameter ("...rest") stays
// highlighted for every argument from its position on.
func renderSignatureHint(
	signature string,
	params []string,
	currentArgIdx int,
) string {
	name, _, ok := strings.Cut(signature, "(")
	if !ok {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")

		if currentArgIdx == i || (variadic && currentArgIdx >= i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
