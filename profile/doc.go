// Package profile runs an optional [github.com/pkg/profile] session for the
// lifetime of a cfgl command.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	cfgl --pprof-mode cpu convert big.yaml -o big.conf
//	go tool pprof -http=: ~/.cache/cfgl/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
package profile

// Tag is the build tag that enables profiling.
const Tag = "pprof"
