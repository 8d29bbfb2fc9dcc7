package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/cfgl/lang"
)

// Fmt prints a source document in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as configuration text (default)."`
	JSON   JSON   `cmd:""                    help:"Format the resolved document as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the resolved document as YAML."`
	Tree   Tree   `cmd:""                    help:"Print the decoded value tree."`
}

type fmtSource struct {
	Source   string `arg:"" default:"-" help:"Source document or '-' for stdin." name:"source"`
	MaxDepth int    `       default:"${maxDepth}" help:"Maximum nesting depth."`
}

// Native formats a document as configuration text.
type Native struct {
	fmtSource `embed:""`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out, err := convertSource(ctx, f.Source, f.MaxDepth)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "native"))
	}

	return writeOutput(ctx, stdio, out)
}

// JSON formats a document as JSON with every expression evaluated.
type JSON struct {
	fmtSource `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var buf bytes.Buffer

	if err := j.resolve(ctx, func(v *lang.Value) error {
		return lang.FormatJSON(&buf, v)
	}); err != nil {
		return lang.WrapError(err).With(slog.String("format", "json"))
	}

	return writeOutput(ctx, stdio, buf.Bytes())
}

// YAML formats a document as YAML with every expression evaluated.
type YAML struct {
	fmtSource `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var buf bytes.Buffer

	if err := y.resolve(ctx, func(v *lang.Value) error {
		return lang.FormatYAML(&buf, v)
	}); err != nil {
		return lang.WrapError(err).With(slog.String("format", "yaml"))
	}

	return writeOutput(ctx, stdio, buf.Bytes())
}

// Tree prints the decoded value tree with the kind of every node and the
// classification of every text.
type Tree struct {
	fmtSource `embed:""`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tree, err := decodeSource(ctx, t.Source, langOptions(t.MaxDepth)...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if err := tree.Print(&buf); err != nil {
		return err
	}

	return writeOutput(ctx, stdio, buf.Bytes())
}

// resolve decodes the source, evaluates its expressions, and passes the
// result to format.
func (f fmtSource) resolve(ctx context.Context, format func(*lang.Value) error) error {
	tree, err := decodeSource(ctx, f.Source, langOptions(f.MaxDepth)...)
	if err != nil {
		return err
	}

	resolved, err := lang.Resolve(ctx, tree, nil)
	if err != nil {
		return err
	}

	return format(resolved)
}
