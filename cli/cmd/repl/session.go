package repl

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/ardnew/cfgl/lang"
	"github.com/ardnew/cfgl/log"
)

// session holds the variables that expressions are evaluated against.
type session struct {
	source string // document path; empty for no variables
	vars   *lang.Variables
	logger log.Logger
}

// load reads the variables from the source document, replacing the current
// table only when the document decodes.
func (s *session) load(ctx context.Context) error {
	if s.source == "" {
		s.vars = lang.NewVariables()

		return nil
	}

	file, err := os.Open(s.source)
	if err != nil {
		return err
	}
	defer file.Close()

	tree, err := lang.DecodeReader(ctx, file, lang.WithLogger(s.logger))
	if err != nil {
		return lang.WrapError(err).With(slog.String("source", s.source))
	}

	s.vars = lang.ExtractVariables(tree)

	s.logger.DebugContext(ctx, "repl variables loaded",
		slog.String("source", s.source),
		slog.Int("count", s.vars.Len()),
	)

	return nil
}

// eval evaluates input, which may omit the expression delimiters.
func (s *session) eval(ctx context.Context, input string) (string, error) {
	return lang.Evaluate(ctx, input, s.vars)
}

// names returns the completion candidates for expressions: variable names
// followed by function names.
func (s *session) names() []string {
	return slices.Concat(s.vars.Names(), lang.Functions())
}
