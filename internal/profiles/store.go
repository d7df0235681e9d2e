// Package profiles stores slim account snapshots under ~/.claudectx and
// switches the live Claude config between them.
package profiles

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/paths"
	"github.com/spf13/afero"
)

// Store is the profile directory plus the live config it patches.
type Store struct {
	fs  afero.Fs
	loc paths.Locations
	log zerolog.Logger
}

// NewStore returns a Store over fsys rooted at loc.
func NewStore(fsys afero.Fs, loc paths.Locations, log zerolog.Logger) *Store {
	return &Store{fs: fsys, loc: loc, log: log}
}

// List returns sorted profile names. A missing profile directory is an empty
// list, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.loc.ProfileDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, apperr.Filesystem("listing profiles in", s.loc.ProfileDir, err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), paths.ProfileSuffix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Path returns the profile file for name. name is slugified first.
func (s *Store) Path(name string) string {
	return s.loc.ProfilePath(Slugify(name))
}

// Exists reports whether a profile file exists for name. Failing to stat
// the file is an apperr.ErrFilesystem, not a missing profile.
func (s *Store) Exists(name string) (bool, error) {
	return claudecode.Exists(s.fs, s.Path(name))
}

// Read parses the profile stored under name.
func (s *Store) Read(name string) (*claudecode.Document, error) {
	ok, err := s.Exists(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound(Slugify(name))
	}
	return claudecode.ReadDocument(s.fs, s.Path(name))
}

// ReadLive parses the live config. A missing file is reported as
// apperr.ErrMissingLiveConfig.
func (s *Store) ReadLive() (*claudecode.Document, error) {
	ok, err := claudecode.Exists(s.fs, s.loc.LiveConfig)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.MissingLiveConfig(s.loc.LiveConfig)
	}
	return claudecode.ReadDocument(s.fs, s.loc.LiveConfig)
}

// Save snapshots the account fields of the live config as profile name. The
// live config itself is left untouched.
func (s *Store) Save(name string) error {
	slug := Slugify(name)
	if slug == "" {
		return fmt.Errorf("profile name %q must contain a letter or digit", name)
	}

	live, err := s.ReadLive()
	if err != nil {
		return err
	}
	slim, err := claudecode.ExtractAccountFields(live)
	if err != nil {
		return apperr.Parse(s.loc.LiveConfig, err)
	}

	if err := s.fs.MkdirAll(s.loc.ProfileDir, 0755); err != nil {
		return apperr.Filesystem("creating", s.loc.ProfileDir, err)
	}
	if err := claudecode.WriteDocument(s.fs, s.Path(name), slim); err != nil {
		return err
	}

	s.log.Debug().Str("profile", slug).Strs("fields", slim.Keys()).Msg("saved profile")
	return nil
}

// Delete removes profile name.
func (s *Store) Delete(name string) error {
	slug := Slugify(name)
	ok, err := s.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(slug)
	}
	path := s.Path(name)
	if err := s.fs.Remove(path); err != nil {
		return apperr.Filesystem("deleting", path, err)
	}
	s.log.Debug().Str("profile", slug).Msg("deleted profile")
	return nil
}

// Switch patches the live config with profile name's account fields. A
// missing live config starts from an empty object. The profile file is only
// read.
func (s *Store) Switch(name string) error {
	profile, err := s.Read(name)
	if err != nil {
		return err
	}

	live := claudecode.NewDocument()
	exists, err := claudecode.Exists(s.fs, s.loc.LiveConfig)
	if err != nil {
		return err
	}
	if exists {
		if live, err = claudecode.ReadDocument(s.fs, s.loc.LiveConfig); err != nil {
			return err
		}
	}

	if err := claudecode.PatchAccountFields(live, profile); err != nil {
		return apperr.Parse(s.Path(name), err)
	}

	if err := claudecode.WriteDocument(s.fs, s.loc.LiveConfig, live); err != nil {
		return err
	}
	s.log.Debug().Str("profile", Slugify(name)).Bool("created", !exists).Msg("switched live config")
	return nil
}
