package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Resolve returns a copy of tree in which every expression text is replaced
// by the text of its result. When vars is nil the table is extracted from
// tree. The input tree is not modified.
func Resolve(ctx context.Context, tree *Value, vars *Variables) (*Value, error) {
	if vars == nil {
		vars = ExtractVariables(tree)
	}

	return resolve(ctx, tree, vars, "")
}

func resolve(ctx context.Context, v *Value, vars *Variables, chain string) (*Value, error) {
	switch kindOf(v) {
	case KindText:
		if !IsExpression(v.Text) {
			return v, nil
		}

		out, err := Evaluate(ctx, v.Text, vars)
		if err != nil {
			return nil, WrapError(err).With(slog.String("chain", chain))
		}

		return NewText(out), nil

	case KindSequence:
		items := make([]*Value, len(v.Items))

		for i, item := range v.Items {
			r, err := resolve(ctx, item, vars, chain+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}

			items[i] = r
		}

		return NewSequence(items...), nil

	case KindMapping:
		entries := make([]Entry, len(v.Entries))

		for i, e := range v.Entries {
			r, err := resolve(ctx, e.Value, vars, join(chain, e.Key))
			if err != nil {
				return nil, err
			}

			entries[i] = NewEntry(e.Key, r)
		}

		return NewMapping(entries...), nil

	default:
		return v, nil
	}
}

// ToNative converts v to plain Go values: int64, float64, string, []any, and
// [yaml.MapSlice] for mappings so that key order survives encoding.
func ToNative(v *Value) any {
	switch kindOf(v) {
	case KindNumber:
		if v.Number.IsFloat() {
			return v.Number.Float64()
		}

		return v.Number.Int64()

	case KindText:
		return v.Text

	case KindSequence:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = ToNative(item)
		}

		return items

	case KindMapping:
		m := make(yaml.MapSlice, len(v.Entries))
		for i, e := range v.Entries {
			m[i] = yaml.MapItem{Key: e.Key, Value: ToNative(e.Value)}
		}

		return m

	default:
		return nil
	}
}

// FormatYAML writes v to w as a block-style YAML document.
func FormatYAML(w io.Writer, v *Value) error {
	return encode(w, v, yaml.Indent(2), yaml.IndentSequence(true))
}

// FormatJSON writes v to w as a single-line JSON document.
func FormatJSON(w io.Writer, v *Value) error {
	return encode(w, v, yaml.JSON())
}

func encode(w io.Writer, v *Value, opts ...yaml.EncodeOption) error {
	b, err := yaml.MarshalWithOptions(ToNative(v), opts...)
	if err != nil {
		return WrapError(err)
	}

	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}

	_, err = w.Write(b)

	return err
}
