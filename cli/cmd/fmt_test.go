package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/cfgl/lang"
)

func TestNativeRun(t *testing.T) {
	ctx, out := withStdio(t.Context(), sampleYAML)

	f := &Native{fmtSource{Source: stdio}}
	if err := f.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.String() != sampleConf {
		t.Errorf("expected:\n%s\ngot:\n%s", sampleConf, out.String())
	}
}

func TestJSONRun(t *testing.T) {
	ctx, out := withStdio(t.Context(), sampleYAML)

	j := &JSON{fmtSource{Source: stdio}}
	if err := j.Run(ctx); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Name   string   `json:"name"`
		Port   int      `json:"port"`
		Next   string   `json:"next"`
		Hosts  []string `json:"hosts"`
		Server struct {
			Label string `json:"label"`
		} `json:"server"`
	}

	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}

	if doc.Name != "demo" || doc.Port != 8080 || doc.Next != "8081" ||
		len(doc.Hosts) != 2 || doc.Server.Label != "demo-8080" {
		t.Errorf("unexpected document %+v", doc)
	}

	if strings.Index(out.String(), `"name"`) > strings.Index(out.String(), `"server"`) {
		t.Errorf("expected source key order in %q", out.String())
	}
}

func TestYAMLRun(t *testing.T) {
	ctx, out := withStdio(t.Context(), sampleYAML)

	y := &YAML{fmtSource{Source: stdio}}
	if err := y.Run(ctx); err != nil {
		t.Fatal(err)
	}

	tree, err := lang.Decode(t.Context(), out.Bytes())
	if err != nil {
		t.Fatalf("invalid YAML %q: %v", out.String(), err)
	}

	next, _ := tree.Lookup("next")
	server, _ := tree.Lookup("server")
	label, _ := server.Lookup("label")

	if next.Scalar() != "8081" || label.Scalar() != "demo-8080" {
		t.Errorf("expected resolved expressions in %q", out.String())
	}
}

func TestTreeRun(t *testing.T) {
	ctx, out := withStdio(t.Context(), "a: 1\nb: \"?[a]\"\n")

	tr := &Tree{fmtSource{Source: stdio}}
	if err := tr.Run(ctx); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"mapping[2]", "number: 1", "text(expression)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in:\n%s", want, out.String())
		}
	}
}

func TestFmt_ResolveError(t *testing.T) {
	ctx, out := withStdio(t.Context(), "a: \"?[mod(1, 0)]\"\n")

	j := &JSON{fmtSource{Source: stdio}}

	err := j.Run(ctx)
	if !errors.Is(err, lang.ErrDivideByZero) {
		t.Errorf("expected lang.ErrDivideByZero, got %v", err)
	}

	if !strings.Contains(err.Error(), "format=json") {
		t.Errorf("expected format attribute in %q", err)
	}

	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
