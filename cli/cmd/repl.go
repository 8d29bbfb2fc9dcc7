package cmd

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ardnew/cfgl/cli/cmd/repl"
	"github.com/ardnew/cfgl/log"
)

// historyFile is the name of the REPL history file in the cache directory.
const historyFile = "history.utf8"

// Repl evaluates expressions interactively.
type Repl struct {
	Source string `help:"Document providing variables." short:"f" type:"existingfile"`
}

// Run executes the repl command. Standard input and output must be terminals.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNoTTY
	}

	var history string

	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			history = filepath.Join(dir, historyFile)
		}
	}

	return repl.Run(ctx, repl.Options{
		Source:  r.Source,
		History: history,
		Logger:  log.Default(),
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
