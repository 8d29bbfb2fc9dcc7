// Package cmd implements the cfgl subcommands.
//
// Each command is a kong command struct whose Run method receives the
// [context.Context] bound by the cli package. Commands read a YAML or JSON
// source document (a path, or "-" for standard input) and write to standard
// output unless told otherwise.
package cmd

const (
	// CacheIdentifier is the kong variable holding the path of the cache
	// directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path of the YAML
	// configuration file.
	ConfigIdentifier = "config"

	// stdio names standard input or output in place of a file path.
	stdio = "-"
)
