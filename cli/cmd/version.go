package cmd

import (
	"context"

	"github.com/ardnew/cfgl/pkg"
)

// Version prints the command name and version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	return writeOutput(ctx, stdio, []byte(pkg.Name+" "+pkg.Version+"\n"))
}
