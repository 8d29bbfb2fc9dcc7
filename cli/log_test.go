package cli

import (
	"io"
	"testing"

	"github.com/ardnew/cfgl/log"
)

func TestLogConfig_Scan(t *testing.T) {
	original := log.Default()
	t.Cleanup(func() { log.SetDefault(original) })

	tests := []struct {
		name   string
		args   []string
		level  log.Level
		format log.Format
		pretty bool
		caller bool
	}{
		{
			name:   "inline",
			args:   []string{"convert", "--log-level=debug", "--log-format=json", "in.yaml"},
			level:  log.LevelDebug,
			format: log.FormatJSON,
		},
		{
			name:   "separate",
			args:   []string{"--log-level", "trace", "fmt", "--log-caller"},
			level:  log.LevelTrace,
			format: log.DefaultFormat,
			caller: true,
		},
		{
			name:   "booleans",
			args:   []string{"--log-pretty=true", "--no-log-caller"},
			level:  log.DefaultLevel,
			format: log.DefaultFormat,
			pretty: true,
		},
		{
			name:   "after terminator",
			args:   []string{"eval", "--", "--log-level=error"},
			level:  log.DefaultLevel,
			format: log.DefaultFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetDefault(log.Make(io.Discard))

			var cfg logConfig

			cfg.scan(tt.args)

			if got := log.Default().Level(); got != tt.level {
				t.Errorf("expected level %v, got %v", tt.level, got)
			}

			if got := log.Default().Format(); got != tt.format {
				t.Errorf("expected format %v, got %v", tt.format, got)
			}

			if cfg.Pretty != tt.pretty || cfg.Caller != tt.caller {
				t.Errorf("expected pretty=%v caller=%v, got %v %v",
					tt.pretty, tt.caller, cfg.Pretty, cfg.Caller)
			}
		})
	}
}
