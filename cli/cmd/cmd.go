package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cfgl/lang"
	"github.com/ardnew/cfgl/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	streamsKey struct{}
	streams    struct {
		in  io.Reader
		out io.Writer
	}
)

// WithStreams returns a new context.Context whose commands read "-" sources
// from in and write standard output to out. Nil streams keep [os.Stdin] and
// [os.Stdout].
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func stdinFrom(ctx context.Context) io.Reader {
	if s, ok := ctx.Value(streamsKey{}).(streams); ok && s.in != nil {
		return s.in
	}

	return os.Stdin
}

func stdoutFrom(ctx context.Context) io.Writer {
	if s, ok := ctx.Value(streamsKey{}).(streams); ok && s.out != nil {
		return s.out
	}

	return os.Stdout
}

// langOptions returns the options shared by every command that decodes or
// converts a document.
func langOptions(maxDepth int) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(maxDepth),
	}
}

// decodeSource decodes the document at path, or standard input for "-".
func decodeSource(
	ctx context.Context,
	path string,
	opts ...lang.Option,
) (*lang.Value, error) {
	r := stdinFrom(ctx)

	if path != stdio {
		file, err := os.Open(path)
		if err != nil {
			return nil, ErrReadInput.With(slog.String("source", path)).Wrap(err)
		}
		defer file.Close()

		r = file
	}

	tree, err := lang.DecodeReader(ctx, r, opts...)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("source", path))
	}

	log.TraceContext(ctx, "decoded source",
		slog.String("source", path),
		slog.String("kind", tree.Kind.String()),
		slog.Int("len", tree.Len()),
	)

	return tree, nil
}

// writeOutput writes data to the file at path, or standard output for "-".
//
// Files are replaced atomically: data is written to a temporary file in the
// same directory and renamed over path, so a failed write leaves any previous
// content in place.
func writeOutput(ctx context.Context, path string, data []byte) error {
	if path == stdio {
		if _, err := stdoutFrom(ctx).Write(data); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	fail := func(err error) error {
		return ErrWriteOutput.With(slog.String("output", path)).Wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fail(err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fail(err)
	}

	if err := tmp.Chmod(outputMode); err != nil {
		tmp.Close()

		return fail(err)
	}

	if err := tmp.Close(); err != nil {
		return fail(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}

	log.DebugContext(ctx, "wrote output",
		slog.String("output", path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// outputMode is the permission mode of files written by [writeOutput].
const outputMode os.FileMode = 0o644
