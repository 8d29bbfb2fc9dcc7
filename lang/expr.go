package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/parser/lexer"
)

// Program is a parsed and validated expression.
// It is immutable and safe for concurrent use.
type Program struct {
	source string
	root   ast.Node
	idents []string
	names  map[string]string // placeholder identifier to variable name
}

// Source returns the expression text the program was compiled from,
// including delimiters if they were present.
func (p *Program) Source() string { return p.source }

// Identifiers returns the distinct variable names referenced by the program
// in order of first appearance. Function names are not included.
func (p *Program) Identifiers() []string { return slices.Clone(p.idents) }

// Run evaluates the program against vars and returns the result: a number,
// a text, or (from concat) a sequence of numbers.
func (p *Program) Run(ctx context.Context, vars *Variables) (*Value, error) {
	if err := context.Cause(ctx); err != nil {
		return nil, ErrExprEvaluate.WithExpr(p.source).Wrap(err)
	}

	in := interpreter{vars: vars, names: p.names}

	v, err := in.eval(p.root)
	if err != nil {
		return nil, ErrExprEvaluate.WithExpr(p.source).Wrap(err)
	}

	return v, nil
}

// Evaluate compiles (or reuses) the expression source and runs it against
// vars, returning the canonical text of the result. The source may include
// the "?[" and "]" delimiters.
func Evaluate(ctx context.Context, source string, vars *Variables) (string, error) {
	prog, err := Compile(source)
	if err != nil {
		return "", err
	}

	v, err := prog.Run(ctx, vars)
	if err != nil {
		return "", err
	}

	return Render(v), nil
}

// Render returns the canonical text of an evaluation result: numbers in
// canonical decimal form, text verbatim, and sequences as "( a b c )".
func Render(v *Value) string {
	if v == nil {
		return ""
	}

	switch v.Kind {
	case KindSequence:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = Render(item)
		}

		return "( " + strings.Join(parts, " ") + " )"

	default:
		return v.Scalar()
	}
}

// compile parses source without consulting the cache.
func compile(source string) (*Program, error) {
	body := exprBody(source)
	if strings.TrimSpace(body) == "" {
		return nil, ErrExprParse.WithExpr(source).
			Wrap(errors.New("empty expression"))
	}

	// Reject every token outside the grammar before the parser sees it, so
	// that syntax such as pipes or member access never reaches the AST.
	tokens, err := lexer.Lex(file.NewSource(body))
	if err != nil {
		return nil, parseError(source, err)
	}

	for _, tok := range tokens {
		if !reservedWord(tok) && !allowedToken(tok) {
			return nil, ErrExprParse.WithExpr(source).Wrap(
				ErrIllegalSyntax.With(
					slog.String("token", tok.Value),
					slog.Int("offset", tok.From),
				),
			)
		}
	}

	body, names := placeholders(body, tokens)

	tree, err := parser.Parse(body)
	if err != nil {
		return nil, parseError(source, err)
	}

	check := grammar{callees: make(map[*ast.IdentifierNode]bool), names: names}

	ast.Walk(&tree.Node, &check)

	if err := check.finish(); err != nil {
		return nil, ErrExprParse.WithExpr(source).Wrap(err)
	}

	return &Program{
		source: source,
		root:   tree.Node,
		idents: check.identifiers(),
		names:  names,
	}, nil
}

func parseError(source string, err error) *Error {
	perr := ErrExprParse.WithExpr(source)

	var ferr *file.Error
	if errors.As(err, &ferr) {
		return perr.
			With(slog.Int("line", ferr.Line), slog.Int("column", ferr.Column)).
			Wrap(errors.New(ferr.Message))
	}

	return perr.Wrap(err)
}

// decimal matches the number literals of the grammar: decimal digits with an
// optional fraction and exponent. Hex, octal, binary, and digit separators
// are rejected.
var decimal = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

func allowedToken(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Identifier:
		// Placeholders for reserved words use '$'.
		return !strings.ContainsRune(tok.Value, placeholderPrefix)
	case lexer.Number:
		return decimal.MatchString(tok.Value)
	case lexer.String, lexer.EOF:
		return true
	case lexer.Operator:
		return tok.Is(lexer.Operator, "+", "-", "*", "/", ",")
	case lexer.Bracket:
		return tok.Is(lexer.Bracket, "(", ")", "[", "]")
	default:
		return false
	}
}

// placeholderPrefix starts the identifiers substituted for reserved words.
// It cannot appear in a variable name.
const placeholderPrefix = '$'

// reservedWord reports whether tok is a word that expr-lang lexes as an
// operator or parses as a literal, but that is an ordinary identifier here:
// and, or, not, in, matches, contains, startsWith, endsWith, let, if, else,
// true, false, and nil.
func reservedWord(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Operator:
		return IsIdentifier(tok.Value)
	case lexer.Identifier:
		return tok.Is(lexer.Identifier, "true", "false", "nil")
	default:
		return false
	}
}

// placeholders replaces every reserved word in body with a placeholder
// identifier, so that variables named like expr-lang keywords still resolve
// through the AST. It returns the rewritten body and the mapping from
// placeholder to the original word, which is nil when nothing was replaced.
func placeholders(body string, tokens []lexer.Token) (string, map[string]string) {
	var (
		runes  []rune
		names  map[string]string
		byWord map[string]string
		out    strings.Builder
		last   int
	)

	for _, tok := range tokens {
		if !reservedWord(tok) {
			continue
		}

		if names == nil {
			runes = []rune(body)
			names = make(map[string]string)
			byWord = make(map[string]string)
		}

		ph, ok := byWord[tok.Value]
		if !ok {
			ph = string(placeholderPrefix) + strconv.Itoa(len(names))
			byWord[tok.Value] = ph
			names[ph] = tok.Value
		}

		out.WriteString(string(runes[last:tok.From]))
		out.WriteString(ph)

		last = tok.To
	}

	if names == nil {
		return body, nil
	}

	out.WriteString(string(runes[last:]))

	return out.String(), names
}

// varName returns the variable name for an identifier, undoing any placeholder
// substitution.
func varName(names map[string]string, ident string) string {
	if original, ok := names[ident]; ok {
		return original
	}

	return ident
}

// grammar is an [ast.Visitor] that rejects every node outside the expression
// grammar. The walk is post-order, so children are visited before parents.
type grammar struct {
	err     error
	names   map[string]string
	idents  []*ast.IdentifierNode
	callees map[*ast.IdentifierNode]bool
	arrays  []*ast.ArrayNode
	operand map[*ast.ArrayNode]bool
}

func (g *grammar) Visit(node *ast.Node) {
	if g.err != nil {
		return
	}

	switch n := (*node).(type) {
	case *ast.IntegerNode, *ast.FloatNode, *ast.StringNode:

	case *ast.IdentifierNode:
		g.idents = append(g.idents, n)

	case *ast.ArrayNode:
		g.arrays = append(g.arrays, n)

	case *ast.UnaryNode:
		if n.Operator != "-" && n.Operator != "+" {
			g.err = ErrIllegalSyntax.With(slog.String("operator", n.Operator))
		}

	case *ast.BinaryNode:
		switch n.Operator {
		case "+", "-", "*", "/":
		default:
			g.err = ErrIllegalSyntax.With(slog.String("operator", n.Operator))
		}

	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			g.err = ErrIllegalSyntax.With(slog.String("node", nodeName(n.Callee)))

			return
		}

		g.callees[callee] = true
		g.call(varName(g.names, callee.Value), n.Arguments)

	case *ast.BuiltinNode:
		g.call(n.Name, n.Arguments)

	default:
		g.err = ErrIllegalSyntax.With(slog.String("node", nodeName(n)))
	}
}

func (g *grammar) call(name string, args []ast.Node) {
	fn, ok := builtins[name]
	if !ok {
		g.err = ErrUnknownFunction.With(slog.String("function", name))

		return
	}

	if !fn.accepts(len(args)) {
		g.err = ErrArity.With(
			slog.String("function", name),
			slog.String("want", fn.arity()),
			slog.Int("got", len(args)),
		)

		return
	}

	if !fn.lists {
		return
	}

	if g.operand == nil {
		g.operand = make(map[*ast.ArrayNode]bool)
	}

	for _, arg := range args {
		if arr, ok := arg.(*ast.ArrayNode); ok {
			g.operand[arr] = true
		}
	}
}

// finish reports the first violation found during the walk, including list
// literals that are not direct operands of a list-accepting function.
func (g *grammar) finish() error {
	if g.err != nil {
		return g.err
	}

	for _, arr := range g.arrays {
		if !g.operand[arr] {
			return ErrIllegalSyntax.With(slog.String("node", "list"))
		}
	}

	return nil
}

func (g *grammar) identifiers() []string {
	var names []string

	for _, id := range g.idents {
		ident := varName(g.names, id.Value)
		if g.callees[id] || slices.Contains(names, ident) {
			continue
		}

		names = append(names, ident)
	}

	return names
}

// nodeName returns a short lowercase name for an AST node type, such as
// "member" for *ast.MemberNode.
func nodeName(n ast.Node) string {
	name := fmt.Sprintf("%T", n)
	name = strings.TrimPrefix(name, "*ast.")
	name = strings.TrimSuffix(name, "Node")

	return strings.ToLower(name)
}
