// Package cli contains the command line interface for cfgl.
//
// # Usage
//
//	cfgl [flags] [convert] [SOURCE] [-o OUTPUT]
//	cfgl eval EXPR... [-f SOURCE]
//	cfgl fmt native|json|yaml|tree [SOURCE]
//	cfgl watch SOURCE -o OUTPUT [--debounce 100ms]
//	cfgl repl [-f SOURCE]
//	cfgl init [--force]
//	cfgl version
//
// SOURCE is a YAML or JSON document, or "-" for standard input.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory (for example ~/.config/cfgl). In the YAML file,
// flag names may use underscores in place of hyphens, and subcommand flags
// may be nested under the subcommand name:
//
//	log_level: debug
//	watch:
//	  debounce: 250ms
//
// "cfgl init" writes the current global flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output (default when stderr is a terminal)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/cfgl/pprof)
package cli
