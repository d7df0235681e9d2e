// Package appconfig reads claudectx's own settings from
// ~/.claudectx/settings.yaml.
package appconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ruminaider/claudectx/internal/apperr"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// LogLevelEnv overrides Settings.LogLevel.
const LogLevelEnv = "CLAUDECTX_LOG_LEVEL"

// Settings holds user-tunable behaviour.
type Settings struct {
	ClaudeBinary string   `yaml:"claude_binary"`
	DefaultArgs  []string `yaml:"default_args,omitempty"`
	LogLevel     string   `yaml:"log_level"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		ClaudeBinary: "claude",
		LogLevel:     "warn",
	}
}

// Parse parses settings.yaml bytes on top of Default.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	if s.ClaudeBinary == "" {
		s.ClaudeBinary = "claude"
	}
	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}
	return s, nil
}


// Load reads path, falling back to Default when it does not exist, then
// applies $CLAUDECTX_LOG_LEVEL.
func Load(fsys afero.Fs, path string) (Settings, error) {
	s := Default()
	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		if s, err = Parse(data); err != nil {
			return Settings{}, apperr.Parse(path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Settings{}, apperr.Filesystem("reading", path, err)
	}

	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		s.LogLevel = lvl
	}
	return s, nil
}
