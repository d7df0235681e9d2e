package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/launcher"
)

var version = "0.3.0"

func main() {
	os.Exit(run(os.Args[1:], newApp()))
}

// run executes the CLI and maps the outcome to an exit status.
func run(args []string, a *app) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var exitErr *launcher.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, huh.ErrUserAborted):
		fmt.Fprintln(a.errOut, "Cancelled.")
	default:
		a.log.Debug().Stringer("kind", apperr.KindOf(err)).Err(err).Msg("command failed")
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
	}
	return 1
}
