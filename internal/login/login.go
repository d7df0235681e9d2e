// Package login brackets an interactive `claude /login` so the user's
// existing ~/.claude.json survives whatever the login does to it.
package login

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/paths"
	"github.com/spf13/afero"
)

// Runner performs the external login step.
type Runner interface {
	Login(ctx context.Context) error
}

// CommandRunner runs `<Binary> /login` attached to the given stdio.
type CommandRunner struct {
	Binary string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Login runs the login command and waits for it.
func (r CommandRunner) Login(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, r.Binary, "/login")
	cmd.Stdin, cmd.Stdout, cmd.Stderr = r.Stdin, r.Stdout, r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running '%s /login': %w", r.Binary, err)
	}
	return nil
}

// Session moves the live config aside for the duration of a login. Restore
// must be called on every exit path.
type Session struct {
	fs        afero.Fs
	loc       paths.Locations
	log       zerolog.Logger
	hadBackup bool
	restored  bool
}

// Begin renames an existing live config to its .bak sibling so the login
// starts from a clean slate. A leftover backup from an earlier interrupted
// login is never overwritten.
func Begin(fsys afero.Fs, loc paths.Locations, log zerolog.Logger) (*Session, error) {
	s := &Session{fs: fsys, loc: loc, log: log}

	backupExists, err := claudecode.Exists(fsys, loc.Backup)
	if err != nil {
		return nil, err
	}
	if backupExists {
		return nil, fmt.Errorf("backup %s already exists from an earlier login; move it back to %s or delete it", loc.Backup, loc.LiveConfig)
	}

	exists, err := claudecode.Exists(fsys, loc.LiveConfig)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := fsys.Rename(loc.LiveConfig, loc.Backup); err != nil {
			return nil, apperr.Filesystem("backing up", loc.LiveConfig, err)
		}
		s.hadBackup = true
		log.Debug().Str("backup", loc.Backup).Msg("moved live config aside")
	}
	return s, nil
}

// HadBackup reports whether a live config existed before the login.
func (s *Session) HadBackup() bool { return s.hadBackup }

// Login runs r and returns the fresh live config it produced.
func (s *Session) Login(ctx context.Context, r Runner) (*claudecode.Document, error) {
	if err := r.Login(ctx); err != nil {
		return nil, err
	}
	exists, err := claudecode.Exists(s.fs, s.loc.LiveConfig)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("login did not create %s", s.loc.LiveConfig)
	}
	return claudecode.ReadDocument(s.fs, s.loc.LiveConfig)
}

// Restore puts the original live config back, or removes the temporary one
// when there was none. Calling it again is a no-op.
func (s *Session) Restore() error {
	if s.restored {
		return nil
	}

	exists, err := claudecode.Exists(s.fs, s.loc.LiveConfig)
	if err != nil {
		return err
	}
	if exists {
		if err := s.fs.Remove(s.loc.LiveConfig); err != nil {
			return apperr.Filesystem("removing", s.loc.LiveConfig, err)
		}
	}
	if s.hadBackup {
		if err := s.fs.Rename(s.loc.Backup, s.loc.LiveConfig); err != nil {
			return apperr.Filesystem("restoring", s.loc.Backup, err)
		}
	}

	s.restored = true
	s.log.Debug().Bool("had_backup", s.hadBackup).Msg("restored live config")
	return nil
}
