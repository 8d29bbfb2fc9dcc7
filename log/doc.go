// Package log is a thin layer over [log/slog] with typed attributes, a trace
// level, and terminal-friendly output.
//
// # Loggers
//
// [Make] builds a [Logger] for a writer from functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("Kitchen"),
//	)
//	logger.Info("converted", slog.String("source", path), slog.Int("bytes", n))
//
// Loggers are values. [Logger.Wrap] derives one with different options and
// [Logger.With] derives one that adds attributes to every record. The zero
// Logger discards everything.
//
// # Package-level logging
//
// [Trace], [Debug], [Info], [Warn], and [Error] (and their Context variants)
// use a default Logger writing to standard error. [Config] adjusts it in
// place, which is how command-line flags take effect.
//
// # Levels and formats
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and
// [LevelError]; [ParseLevel] and [ParseFormat] accept their names in any
// case. Records are encoded as [FormatText] or [FormatJSON]. With
// [WithPretty], text records are colorized and JSON records are indented;
// colors are applied only when the output is a terminal.
package log
