// Package claudecode reads and reconciles Claude Code's ~/.claude.json.
package claudecode

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/spf13/afero"
)

// FileMode is used when creating the live config or a profile. Both hold
// OAuth identity data.
const FileMode os.FileMode = 0600

// ReadDocument reads and parses the JSON object at path. A missing file is
// returned as a filesystem error wrapping fs.ErrNotExist.
func ReadDocument(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, apperr.Filesystem("reading", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, apperr.Parse(path, err)
	}
	return doc, nil
}

// WriteDocument pretty-prints doc over path. The write is a plain truncate
// and overwrite.
func WriteDocument(fsys afero.Fs, path string, doc *Document) error {
	if err := afero.WriteFile(fsys, path, doc.Pretty(), FileMode); err != nil {
		return apperr.Filesystem("writing", path, err)
	}
	return nil
}

// Exists reports whether path exists, following symlinks.
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, apperr.Filesystem("checking", path, err)
}

// IsSymlink reports whether path itself is a symbolic link. Filesystems that
// cannot lstat never report links.
func IsSymlink(fsys afero.Fs, path string) (bool, error) {
	ls, ok := fsys.(afero.Lstater)
	if !ok {
		return false, nil
	}
	info, lstatCalled, err := ls.LstatIfPossible(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, apperr.Filesystem("inspecting", path, err)
	}
	return lstatCalled && info.Mode()&os.ModeSymlink != 0, nil
}

// Readlink returns the target of the symlink at path.
func Readlink(fsys afero.Fs, path string) (string, error) {
	lr, ok := fsys.(afero.LinkReader)
	if !ok {
		return "", apperr.Filesystem("reading link", path, afero.ErrNoReadlink)
	}
	target, err := lr.ReadlinkIfPossible(path)
	if err != nil {
		return "", apperr.Filesystem("reading link", path, err)
	}
	return target, nil
}
