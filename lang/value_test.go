package lang

import (
	"math"
	"strings"
	"testing"
)

func TestNumber_String(t *testing.T) {
	tests := []struct {
		name string
		num  Number
		want string
	}{
		{"zero", Int(0), "0"},
		{"positive int", Int(42), "42"},
		{"negative int", Int(-3), "-3"},
		{"max int", Int(math.MaxInt64), "9223372036854775807"},
		{"integral float", Float(5), "5.0"},
		{"zero float", Float(0), "0.0"},
		{"fraction", Float(0.5), "0.5"},
		{"negative fraction", Float(-2.25), "-2.25"},
		{"large float", Float(123456789), "123456789.0"},
		{"small exponent", Float(1e-5), "1e-05"},
		{"large exponent", Float(1e16), "1e+16"},
		{"just below exponent", Float(1e15), "1000000000000000.0"},
		{"nan", Float(math.NaN()), "nan"},
		{"inf", Float(math.Inf(1)), "inf"},
		{"negative inf", Float(math.Inf(-1)), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.num.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNumber_Conversions(t *testing.T) {
	n := Float(3.75)
	if !n.IsFloat() {
		t.Error("expected float")
	}

	if n.Int64() != 3 {
		t.Errorf("expected truncation to 3, got %d", n.Int64())
	}

	i := Int(7)
	if i.IsFloat() {
		t.Error("expected integer")
	}

	if i.Float64() != 7 {
		t.Errorf("expected 7.0, got %v", i.Float64())
	}

	if !Int(0).IsZero() || !Float(0).IsZero() || Float(0.1).IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestValue_Accessors(t *testing.T) {
	tree := NewMapping(
		NewEntry("a", NewInt(1)),
		NewEntry("b", NewSequence(NewInt(1), NewText("x"))),
		NewEntry("a", NewInt(2)),
	)

	if tree.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", tree.Len())
	}

	v, ok := tree.Lookup("a")
	if !ok || v.Scalar() != "1" {
		t.Errorf("expected first entry for duplicate key, got %v", v)
	}

	if _, ok := tree.Lookup("missing"); ok {
		t.Error("expected missing key not to be found")
	}

	b, _ := tree.Lookup("b")
	if b.IsScalar() || b.Len() != 2 || b.Scalar() != "" {
		t.Errorf("unexpected sequence accessors: scalar=%v len=%d", b.IsScalar(), b.Len())
	}

	var nilValue *Value
	if nilValue.IsScalar() || nilValue.Len() != 0 || nilValue.Scalar() != "" {
		t.Error("nil value should be empty")
	}

	if _, ok := NewInt(1).Lookup("a"); ok {
		t.Error("lookup on a scalar should fail")
	}
}

func TestValue_Print(t *testing.T) {
	tree := NewMapping(
		NewEntry("n", NewFloat(1.5)),
		NewEntry("s", NewSequence(NewText("?[n]"), NewText("word"), NewText("two words"))),
	)

	var sb strings.Builder
	if err := tree.Print(&sb); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	want := `mapping[2]
  n:
    number: 1.5
  s:
    sequence[3]
      text(expression): "?[n]"
      text(identifier): "word"
      text(literal): "two words"
`

	if sb.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, sb.String())
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindInvalid:  "invalid",
		KindNumber:   "number",
		KindText:     "text",
		KindSequence: "sequence",
		KindMapping:  "mapping",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d): expected %q, got %q", int(kind), want, got)
		}
	}
}
