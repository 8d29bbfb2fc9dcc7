package cmd

import (
	"context"

	"github.com/ardnew/cfgl/lang"
)

// Convert renders a YAML or JSON document as configuration text.
type Convert struct {
	Source   string `arg:"" default:"-" help:"Source document or '-' for stdin." name:"source"`
	Output   string `       default:"-" help:"Output file or '-' for stdout."   short:"o" type:"path"`
	MaxDepth int    `       default:"${maxDepth}" help:"Maximum nesting depth."`
}

// Run executes the convert command. Nothing is written unless the whole
// document converts.
func (c *Convert) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out, err := convertSource(ctx, c.Source, c.MaxDepth)
	if err != nil {
		return err
	}

	return writeOutput(ctx, c.Output, out)
}

// convertSource decodes and converts the document at source, returning the
// converted text with a trailing newline.
func convertSource(ctx context.Context, source string, maxDepth int) ([]byte, error) {
	opts := langOptions(maxDepth)

	tree, err := decodeSource(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	out, err := lang.NewConverter(opts...).Convert(ctx, tree)
	if err != nil {
		return nil, err
	}

	return []byte(out + "\n"), nil
}
