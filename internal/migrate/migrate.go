// Package migrate upgrades the legacy layout, where ~/.claude.json was a
// symlink to a full-copy profile, to slim profiles patched into a regular
// ~/.claude.json.
package migrate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/paths"
	"github.com/spf13/afero"
)

// Notice is printed after a migration has run.
const Notice = "Migrated profiles to the patch-in-place format. " +
	"Original profiles were backed up as ~/" + paths.ProfileDirName + "/<name>" + paths.ProfileSuffix + paths.BackupSuffix

// Needed reports whether the live config is still a legacy symlink.
func Needed(fsys afero.Fs, loc paths.Locations) (bool, error) {
	return claudecode.IsSymlink(fsys, loc.LiveConfig)
}

// Run migrates when Needed and writes Notice to out. It returns whether a
// migration happened. Any failure aborts immediately; profiles already
// slimmed stay slimmed.
func Run(fsys afero.Fs, loc paths.Locations, log zerolog.Logger, out io.Writer) (bool, error) {
	needed, err := Needed(fsys, loc)
	if err != nil {
		return false, err
	}
	if !needed {
		return false, nil
	}

	if err := materializeLiveConfig(fsys, loc, log); err != nil {
		return false, err
	}
	if err := slimProfiles(fsys, loc, log); err != nil {
		return false, err
	}

	fmt.Fprintln(out, Notice)
	return true, nil
}

// materializeLiveConfig replaces the symlink with a regular file holding the
// target's content.
func materializeLiveConfig(fsys afero.Fs, loc paths.Locations, log zerolog.Logger) error {
	path := loc.LiveConfig
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return apperr.Filesystem("reading", path, err)
	}
	if err := fsys.Remove(path); err != nil {
		return apperr.Filesystem("removing symlink", path, err)
	}
	if err := afero.WriteFile(fsys, path, data, claudecode.FileMode); err != nil {
		return apperr.Filesystem("writing", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("replaced legacy symlink with regular file")
	return nil
}

// slimProfiles backs up every profile verbatim to <file>.bak and rewrites it
// with only its account fields.
func slimProfiles(fsys afero.Fs, loc paths.Locations, log zerolog.Logger) error {
	entries, err := afero.ReadDir(fsys, loc.ProfileDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperr.Filesystem("listing profiles in", loc.ProfileDir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), paths.ProfileSuffix) {
			continue
		}
		path := filepath.Join(loc.ProfileDir, e.Name())
		if err := slimProfile(fsys, path); err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("slimmed legacy profile")
	}
	return nil
}

func slimProfile(fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return apperr.Filesystem("reading", path, err)
	}
	backup := path + paths.BackupSuffix
	if err := afero.WriteFile(fsys, backup, data, claudecode.FileMode); err != nil {
		return apperr.Filesystem("writing", backup, err)
	}

	doc, err := claudecode.ParseDocument(data)
	if err != nil && !errors.Is(err, claudecode.ErrNotObject) {
		return apperr.Parse(path, err)
	}
	// A non-object profile has no account fields and becomes {}.
	slim, err := claudecode.ExtractAccountFields(doc)
	if err != nil {
		return apperr.Parse(path, err)
	}
	return claudecode.WriteDocument(fsys, path, slim)
}
