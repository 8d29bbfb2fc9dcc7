package lang

import (
	"log/slog"
	"math"

	"github.com/expr-lang/expr/ast"
)

// interpreter walks a validated expression tree.
type interpreter struct {
	vars  *Variables
	names map[string]string // placeholder identifier to variable name
}

func (in interpreter) eval(node ast.Node) (*Value, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return NewInt(int64(n.Value)), nil

	case *ast.FloatNode:
		return NewFloat(n.Value), nil

	case *ast.StringNode:
		return NewText(n.Value), nil

	case *ast.IdentifierNode:
		ident := varName(in.names, n.Value)

		v, ok := in.vars.Lookup(ident)
		if !ok {
			return nil, ErrUnresolved.With(slog.String("identifier", ident))
		}

		return v, nil

	case *ast.UnaryNode:
		x, err := in.number(n.Node, n.Operator)
		if err != nil {
			return nil, err
		}

		if n.Operator == "+" {
			return NewNumber(x), nil
		}

		return negate(x)

	case *ast.BinaryNode:
		l, err := in.number(n.Left, n.Operator)
		if err != nil {
			return nil, err
		}

		r, err := in.number(n.Right, n.Operator)
		if err != nil {
			return nil, err
		}

		return arith(n.Operator, l, r)

	case *ast.CallNode:
		callee, _ := n.Callee.(*ast.IdentifierNode)
		if callee == nil {
			return nil, ErrIllegalSyntax.With(slog.String("node", nodeName(n.Callee)))
		}

		return in.call(varName(in.names, callee.Value), n.Arguments)

	case *ast.BuiltinNode:
		return in.call(n.Name, n.Arguments)

	default:
		return nil, ErrIllegalSyntax.With(slog.String("node", nodeName(n)))
	}
}

func (in interpreter) number(node ast.Node, op string) (Number, error) {
	v, err := in.eval(node)
	if err != nil {
		return Number{}, err
	}

	if v.Kind != KindNumber {
		return Number{}, ErrTypeMismatch.With(
			slog.String("operator", op),
			slog.String("kind", v.Kind.String()),
		)
	}

	return v.Number, nil
}

func (in interpreter) call(name string, nodes []ast.Node) (*Value, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, ErrUnknownFunction.With(slog.String("function", name))
	}

	if !fn.accepts(len(nodes)) {
		return nil, ErrArity.With(
			slog.String("function", name),
			slog.String("want", fn.arity()),
			slog.Int("got", len(nodes)),
		)
	}

	args := make([]*Value, len(nodes))

	for i, node := range nodes {
		arr, isList := node.(*ast.ArrayNode)
		if !isList || !fn.lists {
			v, err := in.eval(node)
			if err != nil {
				return nil, err
			}

			args[i] = v

			continue
		}

		items := make([]*Value, len(arr.Nodes))

		for j, elem := range arr.Nodes {
			v, err := in.eval(elem)
			if err != nil {
				return nil, err
			}

			items[j] = v
		}

		args[i] = NewSequence(items...)
	}

	return fn.call(args)
}

func negate(x Number) (*Value, error) {
	if x.IsFloat() {
		return NewFloat(-x.Float64()), nil
	}

	if x.Int64() == math.MinInt64 {
		return nil, ErrOverflow.With(slog.String("operator", "-"))
	}

	return NewInt(-x.Int64()), nil
}

// arith applies a binary operator. Integer operands stay integral for "+",
// "-", and "*"; "/" always yields a floating-point result.
func arith(op string, l, r Number) (*Value, error) {
	if op == "/" {
		if r.IsZero() {
			return nil, ErrDivideByZero.With(slog.String("operator", op))
		}

		return NewFloat(l.Float64() / r.Float64()), nil
	}

	if l.IsFloat() || r.IsFloat() {
		x, y := l.Float64(), r.Float64()

		switch op {
		case "+":
			return NewFloat(x + y), nil
		case "-":
			return NewFloat(x - y), nil
		case "*":
			return NewFloat(x * y), nil
		}

		return nil, ErrIllegalSyntax.With(slog.String("operator", op))
	}

	x, y := l.Int64(), r.Int64()

	var (
		z        int64
		overflow bool
	)

	switch op {
	case "+":
		z = x + y
		overflow = (x > 0 && y > 0 && z < 0) || (x < 0 && y < 0 && z >= 0)

	case "-":
		z = x - y
		overflow = (x >= 0 && y < 0 && z < 0) || (x < 0 && y > 0 && z >= 0)

	case "*":
		z = x * y
		overflow = x != 0 && (z/x != y ||
			(x == -1 && y == math.MinInt64) ||
			(y == -1 && x == math.MinInt64))

	default:
		return nil, ErrIllegalSyntax.With(slog.String("operator", op))
	}

	if overflow {
		return nil, ErrOverflow.With(slog.String("operator", op))
	}

	return NewInt(z), nil
}
