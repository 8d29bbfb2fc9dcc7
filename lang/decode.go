package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	yamlast "github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	yamltoken "github.com/goccy/go-yaml/token"
)

// Decode parses a YAML (or JSON) document into a [Value] tree, preserving the
// order of mapping keys. An empty document decodes to an empty mapping.
//
// Booleans decode to the text "true" or "false". Unquoted integers beyond the
// 64-bit range decode to floating-point numbers. Null values and any other
// type without a counterpart in the tree fail with [ErrUnsupportedKind].
func Decode(ctx context.Context, data []byte, opts ...Option) (*Value, error) {
	o := makeOptions(opts...)

	var doc any

	err := yaml.UnmarshalContext(ctx, data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	if doc == nil {
		o.logger.TraceContext(ctx, "decode", slog.Bool("empty", true))

		return NewMapping(), nil
	}

	d := decoder{data: data, maxDepth: o.maxDepth}

	v, err := d.value(doc, "", rootPath, 0)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "decode",
		slog.Int("bytes", len(data)),
		slog.String("kind", v.Kind.String()),
		slog.Int("entries", v.Len()),
	)

	return v, nil
}

// DecodeReader reads r to the end and decodes it with [Decode].
func DecodeReader(ctx context.Context, r io.Reader, opts ...Option) (*Value, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Decode(ctx, data, opts...)
}

// decoder converts a natively decoded document into a [Value] tree.
type decoder struct {
	data     []byte
	maxDepth int
	plain    map[string]bool // paths of unquoted string scalars
}

// value converts doc, found at the given key chain and YAML path.
func (d *decoder) value(doc any, chain, path string, depth int) (*Value, error) {
	if depth > d.maxDepth {
		return nil, ErrMaxDepthExceeded.With(
			slog.Int("depth", depth),
			slog.String("chain", chain),
		)
	}

	switch x := doc.(type) {
	case string:
		if d.bigInteger(x, path) {
			f, err := strconv.ParseFloat(x, 64)
			if err == nil {
				return NewFloat(f), nil
			}
		}

		return NewText(x), nil

	case bool:
		return NewText(strconv.FormatBool(x)), nil

	case int:
		return NewInt(int64(x)), nil

	case int64:
		return NewInt(x), nil

	case uint64:
		if x > math.MaxInt64 {
			return NewFloat(float64(x)), nil
		}

		return NewInt(int64(x)), nil

	case float64:
		return NewFloat(x), nil

	case []any:
		items := make([]*Value, len(x))

		for i, elem := range x {
			index := "[" + strconv.Itoa(i) + "]"

			v, err := d.value(elem, chain+index, path+index, depth+1)
			if err != nil {
				return nil, err
			}

			items[i] = v
		}

		return NewSequence(items...), nil

	case yaml.MapSlice:
		entries := make([]Entry, len(x))

		for i, item := range x {
			key := keyString(item.Key)

			v, err := d.value(item.Value, join(chain, key), childPath(path, key), depth+1)
			if err != nil {
				return nil, err
			}

			entries[i] = NewEntry(key, v)
		}

		return NewMapping(entries...), nil

	case nil:
		return nil, ErrUnsupportedKind.With(
			slog.String("kind", "null"),
			slog.String("chain", chain),
		)

	default:
		return nil, ErrUnsupportedKind.With(
			slog.String("type", fmt.Sprintf("%T", x)),
			slog.String("chain", chain),
		)
	}
}

// integer matches decimal integer text. The YAML decoder yields a string for
// an unquoted integer that does not fit in 64 bits.
var integer = regexp.MustCompile(`^[-+]?[1-9][0-9]*$`)

// bigInteger reports whether s is an out-of-range integer written as an
// unquoted scalar at path. Quoted strings of digits stay text.
func (d *decoder) bigInteger(s, path string) bool {
	if !integer.MatchString(s) {
		return false
	}

	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return false
	}

	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return false
	}

	return d.plainScalars()[path]
}

// plainScalars returns the paths of the unquoted string scalars in the
// document, parsing it on first use.
func (d *decoder) plainScalars() map[string]bool {
	if d.plain != nil {
		return d.plain
	}

	d.plain = make(map[string]bool)

	file, err := yamlparser.ParseBytes(d.data, 0)
	if err != nil {
		return d.plain
	}

	for _, doc := range file.Docs {
		yamlast.Walk(plainVisitor(d.plain), doc)
	}

	return d.plain
}

type plainVisitor map[string]bool

func (p plainVisitor) Visit(node yamlast.Node) yamlast.Visitor {
	if n, ok := node.(*yamlast.StringNode); ok && n.GetToken().Type == yamltoken.StringType {
		p[n.GetPath()] = true
	}

	return p
}

// rootPath is the YAML path of the document root.
const rootPath = "$"

// childPath returns the YAML path of the mapping entry key under path. Keys
// containing path syntax are quoted.
func childPath(path, key string) string {
	if strings.ContainsAny(key, "$*.[]") {
		key = "'" + key + "'"
	}

	return path + "." + key
}

// keyString renders a decoded mapping key as text. Non-string keys such as
// integers keep their scalar form and are rejected later as invalid keys.
func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}

	v, err := (&decoder{}).value(key, "", rootPath, 0)
	if err != nil || !v.IsScalar() {
		return yamlText(key)
	}

	return v.Scalar()
}

func yamlText(v any) string {
	b, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return ""
	}

	return string(trimNewline(b))
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}

	return b
}

func join(chain, key string) string {
	if chain == "" {
		return key
	}

	return chain + "." + key
}
