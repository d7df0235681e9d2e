package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/ruminaider/claudectx/internal/appconfig"
	"github.com/ruminaider/claudectx/internal/launcher"
	"github.com/ruminaider/claudectx/internal/logging"
	"github.com/ruminaider/claudectx/internal/login"
	"github.com/ruminaider/claudectx/internal/migrate"
	"github.com/ruminaider/claudectx/internal/paths"
	"github.com/ruminaider/claudectx/internal/profiles"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// app holds the collaborators every command needs. Fields left nil are
// filled from the real environment by setup.
type app struct {
	fs          afero.Fs
	loc         *paths.Locations
	settings    appconfig.Settings
	log         zerolog.Logger
	store       *profiles.Store
	prompt      Prompter
	launcher    launcher.Launcher
	loginRunner login.Runner
	interactive bool
	verbose     bool

	out    io.Writer
	errOut io.Writer
}

func newApp() *app {
	return &app{
		fs:          afero.NewOsFs(),
		log:         zerolog.Nop(),
		prompt:      huhPrompter{},
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
}

// setup resolves paths and settings, builds the logger and store, then runs
// the one-shot layout migration. It runs before every command.
func (a *app) setup() error {
	if a.loc == nil {
		loc, err := paths.Resolve()
		if err != nil {
			return err
		}
		a.loc = &loc
	}

	settings, err := appconfig.Load(a.fs, a.loc.Settings)
	if err != nil {
		return err
	}
	a.settings = settings

	level := settings.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.log = logging.New(a.errOut, level)
	a.store = profiles.NewStore(a.fs, *a.loc, a.log)

	if a.launcher == nil {
		a.launcher = launcher.New(settings.ClaudeBinary)
	}
	if a.loginRunner == nil {
		a.loginRunner = login.CommandRunner{
			Binary: settings.ClaudeBinary,
			Stdin:  os.Stdin,
			Stdout: a.out,
			Stderr: a.errOut,
		}
	}

	_, err = migrate.Run(a.fs, *a.loc, a.log, a.out)
	return err
}

// launch switches the live config to name and starts Claude Code unless
// noLaunch is set.
func (a *app) launch(name string, extra []string, noLaunch bool) error {
	if err := a.store.Switch(name); err != nil {
		return err
	}
	if noLaunch {
		fmt.Fprintf(a.out, "Switched to profile '%s'\n", profiles.Slugify(name))
		return nil
	}
	return a.launcher.Launch(launcher.Args(a.settings.DefaultArgs, extra))
}
