package lang

import (
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
)

// builtin is a function callable from expressions.
type builtin struct {
	call   func(args []*Value) (*Value, error)
	name   string
	params []string
	min    int
	max    int  // negative for variadic
	lists  bool // accepts list literals as operands
}

var builtins = map[string]builtin{
	"mod": {
		name:   "mod",
		params: []string{"a", "b"},
		min:    2,
		max:    2,
		call:   mod,
	},
	"concat": {
		name:   "concat",
		params: []string{"first", "...rest"},
		min:    1,
		max:    -1,
		lists:  true,
		call:   concat,
	},
}

func (b builtin) accepts(n int) bool {
	return n >= b.min && (b.max < 0 || n <= b.max)
}

func (b builtin) arity() string {
	switch {
	case b.max < 0:
		return "at least " + strconv.Itoa(b.min)
	case b.min == b.max:
		return strconv.Itoa(b.min)
	default:
		return strconv.Itoa(b.min) + " to " + strconv.Itoa(b.max)
	}
}

// Functions returns the names of the functions callable from expressions,
// sorted.
func Functions() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// FunctionSignature returns the display signature and parameter names of the
// named function, for example "mod(a, b)".
func FunctionSignature(name string) (signature string, params []string, ok bool) {
	b, ok := builtins[name]
	if !ok {
		return "", nil, false
	}

	return b.name + "(" + strings.Join(b.params, ", ") + ")",
		slices.Clone(b.params), true
}

// mod returns the remainder of a divided by b. A nonzero remainder takes the
// sign of the divisor.
func mod(args []*Value) (*Value, error) {
	a, err := numericArg("mod", 0, args[0])
	if err != nil {
		return nil, err
	}

	b, err := numericArg("mod", 1, args[1])
	if err != nil {
		return nil, err
	}

	if b.IsZero() {
		return nil, ErrDivideByZero.With(slog.String("function", "mod"))
	}

	if !a.IsFloat() && !b.IsFloat() {
		x, y := a.Int64(), b.Int64()

		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}

		return NewInt(r), nil
	}

	x, y := a.Float64(), b.Float64()

	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}

	return NewFloat(r), nil
}

// concat joins its arguments. When the first argument is text, the result is
// the text of every argument joined together. Otherwise the result is a
// sequence: list arguments contribute their elements and scalars contribute
// themselves.
func concat(args []*Value) (*Value, error) {
	if args[0].Kind == KindText {
		var sb strings.Builder

		for _, arg := range args {
			sb.WriteString(Render(arg))
		}

		return NewText(sb.String()), nil
	}

	var items []*Value

	for i, arg := range args {
		switch arg.Kind {
		case KindSequence:
			items = append(items, arg.Items...)

		case KindNumber, KindText:
			items = append(items, arg)

		default:
			return nil, ErrTypeMismatch.With(
				slog.String("function", "concat"),
				slog.Int("argument", i),
				slog.String("kind", arg.Kind.String()),
			)
		}
	}

	return NewSequence(items...), nil
}

func numericArg(fn string, i int, v *Value) (Number, error) {
	if v.Kind != KindNumber {
		return Number{}, ErrTypeMismatch.With(
			slog.String("function", fn),
			slog.Int("argument", i),
			slog.String("kind", v.Kind.String()),
		)
	}

	return v.Number, nil
}
