package lang

import (
	"slices"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	root := NewMapping(
		NewEntry("var1", NewInt(10)),
		NewEntry("name", NewText("cfg")),
		NewEntry("list", NewSequence(NewInt(1))),
		NewEntry("block", NewMapping(NewEntry("inner", NewInt(5)))),
		NewEntry("ratio", NewFloat(0.5)),
	)

	vars := ExtractVariables(root)

	want := []string{"var1", "name", "ratio"}
	if got := vars.Names(); !slices.Equal(got, want) {
		t.Errorf("expected names %v, got %v", want, got)
	}

	if _, ok := vars.Lookup("inner"); ok {
		t.Error("nested scalars must not be collected")
	}

	if _, ok := vars.Lookup("list"); ok {
		t.Error("sequences must not be collected")
	}

	v, ok := vars.Lookup("var1")
	if !ok || v.Scalar() != "10" {
		t.Errorf("expected var1 = 10, got %v", v)
	}
}

func TestExtractVariables_NonMapping(t *testing.T) {
	for _, root := range []*Value{nil, NewInt(1), NewSequence(NewInt(1)), NewMapping()} {
		if n := ExtractVariables(root).Len(); n != 0 {
			t.Errorf("expected empty table for %v, got %d", root, n)
		}
	}
}

func TestNewVariables_Repeated(t *testing.T) {
	vars := NewVariables(
		NewEntry("a", NewInt(1)),
		NewEntry("b", NewInt(2)),
		NewEntry("a", NewInt(3)),
	)

	if got := vars.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected first positions kept, got %v", got)
	}

	if v, _ := vars.Lookup("a"); v.Scalar() != "3" {
		t.Errorf("expected last value to win, got %s", v.Scalar())
	}
}

func TestVariables_All(t *testing.T) {
	vars := NewVariables(
		NewEntry("x", NewInt(1)),
		NewEntry("y", NewInt(2)),
		NewEntry("z", NewInt(3)),
	)

	var names []string

	for name := range vars.All() {
		names = append(names, name)
		if name == "y" {
			break
		}
	}

	if !slices.Equal(names, []string{"x", "y"}) {
		t.Errorf("expected early exit after y, got %v", names)
	}
}

func TestVariables_Nil(t *testing.T) {
	var vars *Variables

	if vars.Len() != 0 || vars.Names() != nil {
		t.Error("nil table should be empty")
	}

	if _, ok := vars.Lookup("x"); ok {
		t.Error("nil table should not resolve names")
	}

	for range vars.All() {
		t.Error("nil table should not yield")
	}
}
