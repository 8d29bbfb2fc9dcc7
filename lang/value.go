package lang

//go:generate go tool stringer --linecomment --type Kind,TextKind --output value_string.go

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindInvalid  Kind = iota // invalid
	KindNumber               // number
	KindText                 // text
	KindSequence             // sequence
	KindMapping              // mapping
)

// Number is an integer or floating-point scalar.
// The zero value is the integer 0.
type Number struct {
	i     int64
	f     float64
	float bool
}

// Int returns an integer Number.
func Int(v int64) Number { return Number{i: v} }

// Float returns a floating-point Number.
func Float(v float64) Number { return Number{f: v, float: true} }

// IsFloat reports whether n holds a floating-point value.
func (n Number) IsFloat() bool { return n.float }

// Int64 returns n as an integer, truncating a floating-point value.
func (n Number) Int64() int64 {
	if n.float {
		return int64(n.f)
	}

	return n.i
}

// Float64 returns n as a floating-point value.
func (n Number) Float64() float64 {
	if n.float {
		return n.f
	}

	return float64(n.i)
}

// IsZero reports whether n is numerically zero.
func (n Number) IsZero() bool {
	if n.float {
		return n.f == 0
	}

	return n.i == 0
}

// String returns the canonical decimal text of n.
//
// Integers have no decimal point. Floating-point values use the shortest
// representation that round-trips, always with a fractional part ("5.0"),
// switching to exponent form below 1e-4 and at or above 1e16.
func (n Number) String() string {
	if !n.float {
		return strconv.FormatInt(n.i, 10)
	}

	switch {
	case math.IsNaN(n.f):
		return "nan"
	case math.IsInf(n.f, 1):
		return "inf"
	case math.IsInf(n.f, -1):
		return "-inf"
	}

	if abs := math.Abs(n.f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}

	s := strconv.FormatFloat(n.f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// NewEntry returns an Entry for the given key and value.
func NewEntry(key string, value *Value) Entry {
	return Entry{Key: key, Value: value}
}

// Value is a node of the data tree.
//
// Only the fields matching Kind are meaningful. Values are not modified after
// construction.
type Value struct {
	Kind    Kind
	Number  Number
	Text    string
	Items   []*Value
	Entries []Entry
}

// NewNumber returns a number Value.
func NewNumber(n Number) *Value { return &Value{Kind: KindNumber, Number: n} }

// NewInt returns an integer number Value.
func NewInt(v int64) *Value { return NewNumber(Int(v)) }

// NewFloat returns a floating-point number Value.
func NewFloat(v float64) *Value { return NewNumber(Float(v)) }

// NewText returns a text Value.
func NewText(s string) *Value { return &Value{Kind: KindText, Text: s} }

// NewSequence returns a sequence Value holding items in order.
func NewSequence(items ...*Value) *Value {
	return &Value{Kind: KindSequence, Items: items}
}

// NewMapping returns a mapping Value holding entries in order.
func NewMapping(entries ...Entry) *Value {
	return &Value{Kind: KindMapping, Entries: entries}
}

// IsScalar reports whether v is a number or text.
func (v *Value) IsScalar() bool {
	return v != nil && (v.Kind == KindNumber || v.Kind == KindText)
}

// Lookup returns the value of the first entry with the given key.
// It returns false if v is not a mapping or has no such entry.
func (v *Value) Lookup(key string) (*Value, bool) {
	if v == nil || v.Kind != KindMapping {
		return nil, false
	}

	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Len returns the number of items or entries in a sequence or mapping, and 0
// for scalars.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}

	switch v.Kind {
	case KindSequence:
		return len(v.Items)
	case KindMapping:
		return len(v.Entries)
	default:
		return 0
	}
}

// Scalar returns the plain text of a scalar value: the canonical number text
// or the raw string. It returns "" for other kinds.
func (v *Value) Scalar() string {
	if v == nil {
		return ""
	}

	switch v.Kind {
	case KindNumber:
		return v.Number.String()
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Print writes an indented listing of the tree to w, one node per line,
// naming each node's kind and, for text, its classification.
func (v *Value) Print(w io.Writer) error {
	return v.print(w, 0)
}

func (v *Value) print(w io.Writer, indent int) error {
	prefix := strings.Repeat("  ", indent)

	if v == nil {
		_, err := io.WriteString(w, prefix+"<nil>\n")

		return err
	}

	var line string

	switch v.Kind {
	case KindNumber:
		line = v.Kind.String() + ": " + v.Number.String()

	case KindText:
		line = v.Kind.String() + "(" + ClassifyText(v.Text).String() + "): " +
			strconv.Quote(v.Text)

	case KindSequence, KindMapping:
		line = v.Kind.String() + "[" + strconv.Itoa(v.Len()) + "]"

	default:
		line = v.Kind.String()
	}

	if _, err := io.WriteString(w, prefix+line+"\n"); err != nil {
		return err
	}

	switch v.Kind {
	case KindSequence:
		for _, item := range v.Items {
			if err := item.print(w, indent+1); err != nil {
				return err
			}
		}

	case KindMapping:
		for _, e := range v.Entries {
			if _, err := io.WriteString(w, prefix+"  "+e.Key+":\n"); err != nil {
				return err
			}

			if err := e.Value.print(w, indent+2); err != nil {
				return err
			}
		}
	}

	return nil
}
