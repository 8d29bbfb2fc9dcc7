package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Converter renders a [Value] tree as dialect text.
//
// A Converter holds no per-conversion state and may be reused, including
// concurrently.
type Converter struct {
	opts options
}

// NewConverter returns a Converter configured by opts.
func NewConverter(opts ...Option) *Converter {
	return &Converter{opts: makeOptions(opts...)}
}

// Convert renders tree with a Converter configured by opts.
func Convert(ctx context.Context, tree *Value, opts ...Option) (string, error) {
	return NewConverter(opts...).Convert(ctx, tree)
}

// ConvertTo renders tree and writes it, followed by a newline, to w.
// Nothing is written if the conversion fails.
func ConvertTo(
	ctx context.Context,
	w io.Writer,
	tree *Value,
	opts ...Option,
) error {
	out, err := Convert(ctx, tree, opts...)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out+"\n")

	return err
}

// walk is the position of a node during conversion.
type walk struct {
	path  []string // keys from the root, for error reporting
	level int      // mapping nesting level, which sets indentation
	depth int      // recursion depth, bounded by the max depth option
	root  bool
}

func (w walk) into(key string, level int) walk {
	path := make([]string, len(w.path), len(w.path)+1)
	copy(path, w.path)

	return walk{
		path:  append(path, key),
		level: level,
		depth: w.depth + 1,
	}
}

func (w walk) chain() string { return strings.Join(w.path, ".") }

// Convert renders tree as dialect text.
//
// Mapping keys must be identifiers; an invalid key anywhere in the tree fails
// the whole conversion. Text scalars that are expressions are evaluated
// against the variables of tree (or those given by [WithVariables]).
func (c *Converter) Convert(ctx context.Context, tree *Value) (string, error) {
	vars := c.opts.vars
	if vars == nil {
		vars = ExtractVariables(tree)
	}

	c.opts.logger.TraceContext(ctx, "convert",
		slog.String("kind", kindOf(tree).String()),
		slog.Int("variables", vars.Len()),
		slog.Int("max_depth", c.opts.maxDepth),
	)

	var sb strings.Builder

	err := c.emit(ctx, &sb, vars, tree, walk{root: true})
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (c *Converter) emit(
	ctx context.Context,
	sb *strings.Builder,
	vars *Variables,
	v *Value,
	at walk,
) error {
	if at.depth > c.opts.maxDepth {
		return ErrMaxDepthExceeded.With(
			slog.Int("depth", at.depth),
			slog.String("chain", at.chain()),
		)
	}

	switch kindOf(v) {
	case KindNumber:
		sb.WriteString(v.Number.String())

	case KindText:
		s, err := c.text(ctx, vars, v.Text, at)
		if err != nil {
			return err
		}

		sb.WriteString(s)

	case KindSequence:
		sb.WriteString("( ")

		for i, item := range v.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}

			next := at.into("["+strconv.Itoa(i)+"]", at.level)
			if err := c.emit(ctx, sb, vars, item, next); err != nil {
				return err
			}
		}

		sb.WriteString(" )")

	case KindMapping:
		if at.root {
			return c.rootMapping(ctx, sb, vars, v, at)
		}

		return c.nestedMapping(ctx, sb, vars, v, at)

	default:
		return ErrUnsupportedKind.With(
			slog.String("kind", kindOf(v).String()),
			slog.String("chain", at.chain()),
		)
	}

	return nil
}

// rootMapping writes one line per entry without braces or indentation.
func (c *Converter) rootMapping(
	ctx context.Context,
	sb *strings.Builder,
	vars *Variables,
	v *Value,
	at walk,
) error {
	if err := checkKeys(v, at); err != nil {
		return err
	}

	for i, e := range v.Entries {
		if i > 0 {
			sb.WriteByte('\n')
		}

		if err := c.entry(ctx, sb, vars, e, at); err != nil {
			return err
		}
	}

	return nil
}

// nestedMapping writes a braced block whose entries are indented two spaces
// per level and whose closing brace is indented one level less.
func (c *Converter) nestedMapping(
	ctx context.Context,
	sb *strings.Builder,
	vars *Variables,
	v *Value,
	at walk,
) error {
	if err := checkKeys(v, at); err != nil {
		return err
	}

	indent := strings.Repeat("  ", at.level)

	sb.WriteByte('{')

	for _, e := range v.Entries {
		sb.WriteByte('\n')
		sb.WriteString(indent)

		if err := c.entry(ctx, sb, vars, e, at); err != nil {
			return err
		}
	}

	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("  ", max(at.level-1, 0)))
	sb.WriteByte('}')

	return nil
}

func (c *Converter) entry(
	ctx context.Context,
	sb *strings.Builder,
	vars *Variables,
	e Entry,
	at walk,
) error {
	sb.WriteString(e.Key)

	if kindOf(e.Value) == KindMapping {
		sb.WriteByte(' ')
	} else {
		sb.WriteString(" = ")
	}

	return c.emit(ctx, sb, vars, e.Value, at.into(e.Key, at.level+1))
}

// text renders a text scalar: expressions are evaluated, identifiers are
// written bare, and everything else is quoted.
func (c *Converter) text(
	ctx context.Context,
	vars *Variables,
	s string,
	at walk,
) (string, error) {
	switch ClassifyText(s) {
	case TextExpression:
		prog, hit, err := compileCached(s)
		if err != nil {
			return "", WrapError(err).With(slog.String("chain", at.chain()))
		}

		result, err := prog.Run(ctx, vars)
		if err != nil {
			return "", WrapError(err).With(slog.String("chain", at.chain()))
		}

		out := Render(result)

		c.opts.logger.TraceContext(ctx, "evaluate",
			slog.String("expression", s),
			slog.String("result", out),
			slog.Bool("cached", hit),
			slog.String("chain", at.chain()),
		)

		return out, nil

	case TextIdentifier:
		return s, nil

	default:
		return Quote(s), nil
	}
}

// checkKeys validates every key of a mapping before any entry is written.
func checkKeys(v *Value, at walk) error {
	seen := make(map[string]struct{}, len(v.Entries))

	for _, e := range v.Entries {
		if !IsIdentifier(e.Key) {
			return ErrInvalidKey.With(
				slog.String("key", e.Key),
				slog.String("chain", at.chain()),
			)
		}

		if _, dup := seen[e.Key]; dup {
			return ErrDuplicateKey.With(
				slog.String("key", e.Key),
				slog.String("chain", at.chain()),
			)
		}

		seen[e.Key] = struct{}{}
	}

	return nil
}

func kindOf(v *Value) Kind {
	if v == nil {
		return KindInvalid
	}

	return v.Kind
}
