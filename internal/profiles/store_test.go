package profiles_test

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/ruminaider/claudectx/internal/claudecode"
	"github.com/ruminaider/claudectx/internal/paths"
	"github.com/ruminaider/claudectx/internal/profiles"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) (*profiles.Store, afero.Fs, paths.Locations) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	loc := paths.New("/home/test")
	require.NoError(t, fsys.MkdirAll(loc.Home, 0755))
	return profiles.NewStore(fsys, loc, zerolog.Nop()), fsys, loc
}

// liveConfig returns a full ~/.claude.json body for the given account.
func liveConfig(accountUUID, name string) string {
	return `{
  "numStartups": 7,
  "theme": "dark",
  "oauthAccount": {
    "accountUuid": "` + accountUUID + `",
    "emailAddress": "` + name + `@example.com",
    "organizationUuid": "org-` + name + `",
    "displayName": "` + name + `",
    "organizationRole": "admin",
    "organizationName": "` + name + ` Org",
    "hasExtraUsageEnabled": false
  },
  "userID": "user-` + name + `",
  "projects": {"/src": {"history": []}}
}`
}

func exists(t *testing.T, s *profiles.Store, name string) bool {
	t.Helper()
	ok, err := s.Exists(name)
	require.NoError(t, err)
	return ok
}

// denyStatFs fails Stat for one path with a permission error.
type denyStatFs struct {
	afero.Fs
	path string
}

func (d denyStatFs) Stat(name string) (os.FileInfo, error) {
	if name == d.path {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
	}
	return d.Fs.Stat(name)
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
}

func readJSON(t *testing.T, fsys afero.Fs, path string) map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestList(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		s, _, _ := newMemStore(t)
		names, err := s.List()
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("empty directory", func(t *testing.T) {
		s, fsys, loc := newMemStore(t)
		require.NoError(t, fsys.MkdirAll(loc.ProfileDir, 0755))
		names, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("filters and sorts", func(t *testing.T) {
		s, fsys, loc := newMemStore(t)
		writeFile(t, fsys, loc.ProfilePath("work"), `{}`)
		writeFile(t, fsys, loc.ProfilePath("personal"), `{}`)
		writeFile(t, fsys, loc.ProfilePath("personal")+".bak", `{}`)
		writeFile(t, fsys, filepath.Join(loc.ProfileDir, "settings.yaml"), ``)
		writeFile(t, fsys, filepath.Join(loc.ProfileDir, "notes.json"), `{}`)
		require.NoError(t, fsys.MkdirAll(filepath.Join(loc.ProfileDir, "dir.claude.json"), 0755))

		names, err := s.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"personal", "work"}, names)
	})
}

func TestPath(t *testing.T) {
	s, _, loc := newMemStore(t)
	assert.Equal(t, filepath.Join(loc.ProfileDir, "my-work-profile.claude.json"), s.Path("My Work Profile"))
	assert.Equal(t, s.Path("fg-company"), s.Path("FG@Company"))
}

func TestExists(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	assert.False(t, exists(t, s, "work"))
	writeFile(t, fsys, loc.ProfilePath("work"), `{}`)
	assert.True(t, exists(t, s, "work"))
	assert.True(t, exists(t, s, "WORK"))
}

func TestSave(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	id := uuid.NewString()
	content := liveConfig(id, "alice")
	writeFile(t, fsys, loc.LiveConfig, content)

	require.NoError(t, s.Save("Alice Profile"))

	saved := readJSON(t, fsys, loc.ProfilePath("alice-profile"))
	assert.Len(t, saved, 2)
	assert.Equal(t, "user-alice", saved["userID"])
	assert.Equal(t, id, saved["oauthAccount"].(map[string]any)["accountUuid"])
	assert.NotContains(t, saved, "theme")
	assert.NotContains(t, saved, "projects")

	live, err := afero.ReadFile(fsys, loc.LiveConfig)
	require.NoError(t, err)
	assert.Equal(t, content, string(live), "live config must be untouched")
}

func TestSave_RoundTripMatchesExtract(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, liveConfig(uuid.NewString(), "bob"))

	require.NoError(t, s.Save("bob"))

	live, err := claudecode.ReadDocument(fsys, loc.LiveConfig)
	require.NoError(t, err)
	slim, err := claudecode.ExtractAccountFields(live)
	require.NoError(t, err)
	want := slim.Pretty()
	got, err := afero.ReadFile(fsys, loc.ProfilePath("bob"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestSave_Overwrites(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, liveConfig("A", "alice"))
	require.NoError(t, s.Save("work"))
	writeFile(t, fsys, loc.LiveConfig, liveConfig("B", "bob"))
	require.NoError(t, s.Save("work"))

	saved := readJSON(t, fsys, loc.ProfilePath("work"))
	assert.Equal(t, "B", saved["oauthAccount"].(map[string]any)["accountUuid"])
}

func TestSave_MissingLiveConfig(t *testing.T) {
	s, _, _ := newMemStore(t)
	err := s.Save("work")
	assert.ErrorIs(t, err, apperr.ErrMissingLiveConfig)
	assert.False(t, exists(t, s, "work"))
}

func TestSave_MalformedLiveConfig(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, `{not json`)
	assert.ErrorIs(t, s.Save("work"), apperr.ErrParseFailure)
}

func TestSave_EmptySlug(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, `{}`)
	assert.Error(t, s.Save("@@@"))
}

func TestDelete(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.ProfilePath("to-delete"), `{}`)
	writeFile(t, fsys, loc.ProfilePath("to-keep"), `{}`)

	require.NoError(t, s.Delete("To Delete"))

	assert.False(t, exists(t, s, "to-delete"))
	assert.True(t, exists(t, s, "to-keep"))
}

func TestDelete_NotFound(t *testing.T) {
	s, _, _ := newMemStore(t)
	err := s.Delete("Nope Profile")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "'nope-profile'")
}

func TestSwitch(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, `{"oauthAccount":{"accountUuid":"A"},"userID":"u1","theme":"dark"}`)
	profileBody := `{"oauthAccount":{"accountUuid":"B"}}`
	writeFile(t, fsys, loc.ProfilePath("other"), profileBody)

	require.NoError(t, s.Switch("other"))

	live, err := afero.ReadFile(fsys, loc.LiveConfig)
	require.NoError(t, err)
	assert.JSONEq(t, `{"oauthAccount":{"accountUuid":"B"},"theme":"dark"}`, string(live))

	profile, err := afero.ReadFile(fsys, loc.ProfilePath("other"))
	require.NoError(t, err)
	assert.Equal(t, profileBody, string(profile), "profile must not be written")
}

func TestSwitch_CreatesLiveConfig(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.ProfilePath("work"), `{"userID":"u1","theme":"ignored"}`)

	require.NoError(t, s.Switch("work"))

	assert.Equal(t, map[string]any{"userID": "u1"}, readJSON(t, fsys, loc.LiveConfig))
}

func TestSwitch_BetweenProfiles(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, liveConfig("A", "alice"))
	require.NoError(t, s.Save("work"))
	writeFile(t, fsys, loc.LiveConfig, liveConfig("B", "bob"))
	require.NoError(t, s.Save("personal"))

	require.NoError(t, s.Switch("work"))
	live := readJSON(t, fsys, loc.LiveConfig)
	assert.Equal(t, "A", live["oauthAccount"].(map[string]any)["accountUuid"])
	assert.Equal(t, "user-alice", live["userID"])
	assert.Equal(t, "dark", live["theme"])

	require.NoError(t, s.Switch("personal"))
	live = readJSON(t, fsys, loc.LiveConfig)
	assert.Equal(t, "B", live["oauthAccount"].(map[string]any)["accountUuid"])
	assert.Contains(t, live, "projects")
}

func TestSwitch_NotFound(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, `{"theme":"dark"}`)

	err := s.Switch("Missing One")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "missing-one")
}

func TestSwitch_MalformedProfile(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, `{"theme":"dark"}`)
	writeFile(t, fsys, loc.ProfilePath("broken"), `{{{`)

	assert.ErrorIs(t, s.Switch("broken"), apperr.ErrParseFailure)

	live, err := afero.ReadFile(fsys, loc.LiveConfig)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, string(live))
}

func TestSwitch_MalformedLiveConfig(t *testing.T) {
	s, fsys, loc := newMemStore(t)
	writeFile(t, fsys, loc.LiveConfig, `nope`)
	writeFile(t, fsys, loc.ProfilePath("work"), `{}`)

	assert.ErrorIs(t, s.Switch("work"), apperr.ErrParseFailure)
}

func TestReadLive_Missing(t *testing.T) {
	s, _, _ := newMemStore(t)
	_, err := s.ReadLive()
	assert.ErrorIs(t, err, apperr.ErrMissingLiveConfig)
}

func TestListPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	home := t.TempDir()
	loc := paths.New(home)
	require.NoError(t, os.MkdirAll(loc.ProfileDir, 0000))
	t.Cleanup(func() { _ = os.Chmod(loc.ProfileDir, 0755) })
	s := profiles.NewStore(afero.NewOsFs(), loc, zerolog.Nop())

	_, err := s.List()
	assert.ErrorIs(t, err, apperr.ErrFilesystem)
}

func TestStatFailureIsNotNotFound(t *testing.T) {
	mem := afero.NewMemMapFs()
	loc := paths.New("/home/test")
	writeFile(t, mem, loc.LiveConfig, liveConfig("A", "alice"))
	writeFile(t, mem, loc.ProfilePath("work"), `{"userID":"u1"}`)
	s := profiles.NewStore(denyStatFs{Fs: mem, path: loc.ProfilePath("work")}, loc, zerolog.Nop())

	_, err := s.Exists("work")
	assert.ErrorIs(t, err, apperr.ErrFilesystem)
	assert.ErrorIs(t, err, fs.ErrPermission)

	for name, op := range map[string]func() error{
		"delete": func() error { return s.Delete("work") },
		"switch": func() error { return s.Switch("work") },
		"read":   func() error { _, err := s.Read("work"); return err },
	} {
		t.Run(name, func(t *testing.T) {
			err := op()
			assert.ErrorIs(t, err, apperr.ErrFilesystem)
			assert.NotErrorIs(t, err, apperr.ErrNotFound)
		})
	}

	ok, err := afero.Exists(mem, loc.ProfilePath("work"))
	require.NoError(t, err)
	assert.True(t, ok, "profile must survive a failed delete")
}
