package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/cfgl/lang"
)

func TestEvalRun(t *testing.T) {
	tests := []struct {
		name    string
		exprs   []string
		source  string
		stdin   string
		want    string
		wantErr *lang.Error
	}{
		{
			name:  "no_variables",
			exprs: []string{"1 + 2", "?[mod(-7, 3)]", "concat('a', 'b')"},
			want:  "3\n2\nab\n",
		},
		{
			name:   "variables_from_stdin",
			exprs:  []string{"width * height", "concat(name, '.conf')"},
			source: stdio,
			stdin:  "width: 3\nheight: 4\nname: app\n",
			want:   "12\napp.conf\n",
		},
		{
			name:    "unresolved",
			exprs:   []string{"1", "missing"},
			wantErr: lang.ErrUnresolved,
		},
		{
			name:    "illegal",
			exprs:   []string{"x.y"},
			source:  stdio,
			stdin:   "x: 1\n",
			wantErr: lang.ErrIllegalSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := withStdio(t.Context(), tt.stdin)

			e := &Eval{Exprs: tt.exprs, Source: tt.source}
			err := e.Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}

				if out.Len() != 0 {
					t.Errorf("expected no output on error, got %q", out.String())
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestEvalRun_FileSource(t *testing.T) {
	source := writeFile(t, t.TempDir(), "vars.json", `{"base": 10, "nested": {"x": 1}}`)
	ctx, out := withStdio(t.Context(), "")

	e := &Eval{Exprs: []string{"base / 4"}, Source: source}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.String() != "2.5\n" {
		t.Errorf("expected %q, got %q", "2.5\n", out.String())
	}

	e = &Eval{Exprs: []string{"nested"}, Source: source}
	if err := e.Run(ctx); !errors.Is(err, lang.ErrUnresolved) {
		t.Errorf("expected nested mapping to be unavailable, got %v", err)
	}
}
