package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/cfgl/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The file is a mapping from flag names to values. Flag names with hyphens
// (e.g., "log-level") may also be written with underscores ("log_level").
// Flags of a subcommand may be nested under a mapping named for it:
//
//	log_level: debug
//	log_pretty: false
//	watch:
//	  debounce: 250ms
//
// Command-line flags override configuration values. A file that cannot be
// decoded is reported and otherwise ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		var doc map[string]any

		if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("cause", err.Error()),
			)

			return config{}, nil
		}

		return configFrom(doc), nil
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

func configFrom(doc map[string]any) config {
	cfg := make(config, len(doc))
	for key, value := range doc {
		cfg[key] = flagValue(value)
	}

	return cfg
}

// flagValue converts a decoded YAML value into a form kong can map. Kong
// parses numbers from strings, and nested mappings become subcommand
// sections.
func flagValue(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = flagValue(item)
		}

		return out
	case map[string]any:
		return configFrom(v)
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := r[parent.Command.Name].(config); ok {
			if value, ok := section.lookup(flag.Name); ok {
				return value, nil
			}
		}
	}

	if value, ok := r.lookup(flag.Name); ok {
		return value, nil
	}

	return nil, nil
}

func (r config) lookup(name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if value, ok := r[key]; ok {
			if _, section := value.(config); !section {
				return value, true
			}
		}
	}

	return nil, false
}
