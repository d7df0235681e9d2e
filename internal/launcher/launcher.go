// Package launcher starts Claude Code once the live config is in place.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Launcher starts the external tool with args.
type Launcher interface {
	Launch(args []string) error
}

// ExitError carries the exit status of a child that ran to completion
// without replacing this process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("claude exited with status %d", e.Code)
}

// Exec launches Binary. On unix it replaces the current process; elsewhere it
// runs the child with the given stdio and reports a non-zero exit as
// *ExitError.
type Exec struct {
	Binary string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Exec bound to the process's stdio.
func New(binary string) *Exec {
	return &Exec{Binary: binary, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Launch resolves Binary on $PATH and starts it.
func (e *Exec) Launch(args []string) error {
	path, err := exec.LookPath(e.Binary)
	if err != nil {
		return fmt.Errorf("launching %s - is Claude Code installed?: %w", e.Binary, err)
	}
	return e.launch(path, args)
}

// Args joins default arguments from settings with the ones given after --.
func Args(defaults, extra []string) []string {
	out := make([]string, 0, len(defaults)+len(extra))
	out = append(out, defaults...)
	return append(out, extra...)
}

func (e *Exec) run(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = e.Stdin, e.Stdout, e.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", path, err)
	}
	return nil
}
