package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// HomeEnv overrides the home directory used for every claudectx path.
const HomeEnv = "CLAUDECTX_HOME"

const (
	LiveConfigName = ".claude.json"
	BackupSuffix   = ".bak"
	ProfileDirName = ".claudectx"
	ProfileSuffix  = ".claude.json"
	SettingsName   = "settings.yaml"
)

// Locations holds every path claudectx touches, resolved once at startup.
type Locations struct {
	Home       string
	LiveConfig string
	Backup     string
	ProfileDir string
	Settings   string
}

// New builds Locations rooted at home.
func New(home string) Locations {
	profileDir := filepath.Join(home, ProfileDirName)
	live := filepath.Join(home, LiveConfigName)
	return Locations{
		Home:       home,
		LiveConfig: live,
		Backup:     live + BackupSuffix,
		ProfileDir: profileDir,
		Settings:   filepath.Join(profileDir, SettingsName),
	}
}

// Resolve builds Locations from the environment.
func Resolve() (Locations, error) {
	home, err := Home()
	if err != nil {
		return Locations{}, err
	}
	return New(home), nil
}

// Home returns $CLAUDECTX_HOME verbatim when set, otherwise the user's home
// directory. homedir.Dir consults HOME/USERPROFILE first, so overrides set for
// a child process are honoured on every platform.
func Home() (string, error) {
	if h, ok := os.LookupEnv(HomeEnv); ok {
		return h, nil
	}
	h, err := homedir.Dir()
	if err != nil || h == "" {
		return "", fmt.Errorf("resolving home directory (set %s to override): %w", HomeEnv, err)
	}
	return h, nil
}

// ProfilePath returns the file for a profile slug.
func (l Locations) ProfilePath(slug string) string {
	return filepath.Join(l.ProfileDir, slug+ProfileSuffix)
}
