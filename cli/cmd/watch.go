package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/cfgl/log"
)

// DefaultDebounce is the default quiet period between the last change to a
// watched source and its reconversion.
const DefaultDebounce = 100 * time.Millisecond

// Watch converts a source document whenever it changes.
type Watch struct {
	Source   string        `arg:"" help:"Source document to watch."            name:"source" type:"existingfile"`
	Output   string        `       help:"Output file."                          required:""   short:"o" type:"path"`
	Debounce time.Duration `       default:"100ms" help:"Quiet period before reconverting."`
	MaxDepth int           `       default:"${maxDepth}" help:"Maximum nesting depth."`
}

// Run executes the watch command. It converts the source once, then again
// after each burst of writes, until ctx is canceled. A failed conversion is
// logged and leaves the previous output in place.
func (w *Watch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	source, err := filepath.Abs(w.Source)
	if err != nil {
		return ErrWatch.With(slog.String("source", w.Source)).Wrap(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	// Editors commonly replace files by renaming over them, which drops a
	// watch on the file itself, so watch its directory instead.
	if err := watcher.Add(filepath.Dir(source)); err != nil {
		return ErrWatch.With(slog.String("source", source)).Wrap(err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	log.InfoContext(ctx, "watching",
		slog.String("source", source),
		slog.String("output", w.Output),
		slog.Duration("debounce", debounce),
	)

	w.convert(ctx, source)

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "watch stopped", slog.String("source", source))

			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return ErrWatch.With(slog.String("source", source)).
					Wrap(fsnotify.ErrClosed)
			}

			if !changed(event, source) {
				continue
			}

			log.TraceContext(ctx, "source event",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			timer.Reset(debounce)

		case <-timer.C:
			w.convert(ctx, source)

		case err, ok := <-watcher.Errors:
			if !ok {
				return ErrWatch.With(slog.String("source", source)).
					Wrap(fsnotify.ErrClosed)
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

// changed reports whether event may have changed the content of source.
func changed(event fsnotify.Event, source string) bool {
	if filepath.Clean(event.Name) != source {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watch) convert(ctx context.Context, source string) {
	start := time.Now()

	out, err := convertSource(ctx, source, w.MaxDepth)
	if err == nil {
		err = writeOutput(ctx, w.Output, out)
	}

	if err != nil {
		log.ErrorContext(ctx, "conversion failed", slog.Any("error", err))

		return
	}

	log.InfoContext(ctx, "converted",
		slog.String("source", source),
		slog.String("output", w.Output),
		slog.Duration("elapsed", time.Since(start)),
	)
}
