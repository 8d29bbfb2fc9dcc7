package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("expected level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected format %v, got %v", DefaultFormat, logger.Format())
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Error("unexpected caller or pretty default")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	tests := []struct {
		level   Level
		logged  []string
		dropped []string
	}{
		{LevelTrace, []string{"trace", "debug", "info", "warn", "error"}, nil},
		{LevelInfo, []string{"info", "warn", "error"}, []string{"trace", "debug"}},
		{LevelError, []string{"error"}, []string{"trace", "debug", "info", "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.level), WithPretty(false), WithTimeLayout("none"))

			logger.Trace("trace")
			logger.Debug("debug")
			logger.Info("info")
			logger.Warn("warn")
			logger.Error("error")

			out := buf.String()

			for _, msg := range tt.logged {
				if !strings.Contains(out, "msg="+msg) {
					t.Errorf("expected %q to be logged, got:\n%s", msg, out)
				}
			}

			for _, msg := range tt.dropped {
				if strings.Contains(out, "msg="+msg) {
					t.Errorf("expected %q to be dropped, got:\n%s", msg, out)
				}
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))
	logger.Trace("deep")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", rec["level"])
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none"), WithPretty(false)).Info("no time")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got %q", buf.String())
	}

	buf.Reset()
	Make(&buf, WithTimeLayout("2006"), WithPretty(false)).Info("year only")

	if !strings.Contains(buf.String(), "time=2") || strings.Contains(buf.String(), "T") {
		t.Errorf("expected four-digit year timestamp, got %q", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("where")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller to name this file, got %q", buf.String())
	}
}

func TestLogger_WithAttrs(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(pretty), WithTimeLayout("none")).
			With(slog.String("component", "convert"))

		logger.Info("done", slog.Int("entries", 3))

		out := buf.String()
		if !strings.Contains(out, "component=convert") || !strings.Contains(out, "entries=3") {
			t.Errorf("pretty=%v: expected persistent and record attributes, got %q", pretty, out)
		}
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Errorf("Wrap must not modify the original: base=%v wrapped=%v", base.Level(), wrapped.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected wrapped logger to share output, got %q", buf.String())
	}
}

func TestLogger_Zero(t *testing.T) {
	var logger Logger

	logger.Info("discarded")
	logger.TraceContext(t.Context(), "discarded")

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger should not be enabled")
	}

	if logger.With(slog.Int("a", 1)).Logger != nil {
		t.Error("With on a zero logger should stay zero")
	}
}

func TestPrettyText_Groups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Logger.WithGroup("req").Info("served",
		slog.Group("peer", slog.String("addr", "local")),
		slog.String("path", "/a b"),
	)

	out := buf.String()
	for _, want := range []string{"INFO ", "served", "req.peer.addr=local", `req.path="/a b"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestPrettyJSON_Indented(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		With(slog.String("k", "v"))
	logger.Warn("careful", slog.Group("g", slog.Int("n", 1)))

	out := buf.String()
	if !strings.Contains(out, "\n  \"level\": \"WARN\"") {
		t.Errorf("expected indented JSON, got:\n%s", out)
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if rec["k"] != "v" {
		t.Errorf("expected persistent attribute, got %v", rec)
	}

	if g, ok := rec["g"].(map[string]any); !ok || g["n"] != float64(1) {
		t.Errorf("expected group attribute, got %v", rec["g"])
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf safeBuffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"))

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 50 {
				logger.Info("tick")
			}
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "tick\n"); n != 400 {
		t.Errorf("expected 400 complete lines, got %d", n)
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
