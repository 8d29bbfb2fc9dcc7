package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/cfgl/lang"
	"github.com/ardnew/cfgl/log"
)

// Eval evaluates expressions against the variables of a source document.
type Eval struct {
	Exprs  []string `arg:"" help:"Expressions to evaluate, with or without the ?[ ] delimiters." name:"expr"`
	Source string   `       help:"Document providing variables, or '-' for stdin."                                 short:"f"`
}

// Run executes the eval command, printing one result per line. Nothing is
// printed unless every expression evaluates.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var vars *lang.Variables

	if e.Source != "" {
		tree, err := decodeSource(ctx, e.Source, lang.WithLogger(log.Default()))
		if err != nil {
			return err
		}

		vars = lang.ExtractVariables(tree)
	}

	log.DebugContext(ctx, "evaluating",
		slog.Int("expressions", len(e.Exprs)),
		slog.Int("variables", vars.Len()),
	)

	var out strings.Builder

	for _, source := range e.Exprs {
		result, err := lang.Evaluate(ctx, source, vars)
		if err != nil {
			return err
		}

		out.WriteString(result)
		out.WriteByte('\n')
	}

	return writeOutput(ctx, stdio, []byte(out.String()))
}
