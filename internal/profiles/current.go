package profiles

import (
	"path/filepath"
	"strings"

	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/paths"
)

// Current returns the stored profile matching the live config. When the live
// config is still a symlink into the profile directory the link target names
// the profile. Otherwise profiles are scanned in List order and the first
// whose oauthAccount.accountUuid equals the live one wins. An unreadable live
// config matches nothing; a malformed profile is an error.
func (s *Store) Current() (string, bool, error) {
	if name, ok := s.currentFromLink(); ok {
		return name, true, nil
	}

	live, err := claudecode.ReadDocument(s.fs, s.loc.LiveConfig)
	if err != nil {
		return "", false, nil
	}
	want := claudecode.AccountUUID(live)
	if want == "" {
		return "", false, nil
	}

	names, err := s.List()
	if err != nil {
		return "", false, err
	}
	for _, name := range names {
		doc, err := claudecode.ReadDocument(s.fs, s.loc.ProfilePath(name))
		if err != nil {
			return "", false, err
		}
		if claudecode.AccountUUID(doc) == want {
			return name, true, nil
		}
	}
	return "", false, nil
}

func (s *Store) currentFromLink() (string, bool) {
	isLink, err := claudecode.IsSymlink(s.fs, s.loc.LiveConfig)
	if err != nil || !isLink {
		return "", false
	}
	target, err := claudecode.Readlink(s.fs, s.loc.LiveConfig)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(s.loc.LiveConfig), target)
	}
	if filepath.Clean(filepath.Dir(target)) != filepath.Clean(s.loc.ProfileDir) {
		return "", false
	}
	name, ok := strings.CutSuffix(filepath.Base(target), paths.ProfileSuffix)
	return name, ok && name != ""
}

// Entry is one row of a profile listing.
type Entry struct {
	Name    string
	Account *claudecode.OAuthAccount
	Current bool
}

// Label renders "<name> - <displayName> @ <org>".
func (e Entry) Label() string {
	if e.Account == nil {
		return e.Name + " - (no account)"
	}
	return e.Name + " - " + e.Account.Label()
}

// Entries lists every profile with its account and marks the current one.
// Any unreadable or malformed profile aborts the listing.
func (s *Store) Entries() ([]Entry, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []Entry{}, nil
	}

	current, _, err := s.Current()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		path := s.loc.ProfilePath(name)
		doc, err := claudecode.ReadDocument(s.fs, path)
		if err != nil {
			return nil, err
		}
		e := Entry{Name: name, Current: name == current}
		acct, ok, err := claudecode.Account(doc)
		if err != nil {
			return nil, apperr.Parse(path, err)
		}
		if ok {
			e.Account = &acct
		}
		entries = append(entries, e)
	}
	return entries, nil
}
