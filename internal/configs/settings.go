package configs

import (
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the directory holding the user configuration.
const ConfigDirEnv = "PIXI_DEVENV_CONFIG_DIR"

type UserSettings struct {
	UserConfigsPath string
}

var UserDevenvSettings *UserSettings

func init() {
	UserDevenvSettings = NewUserSettings()
}

// NewUserSettings resolves the configuration directory from the
// environment. The path is empty when no directory can be determined, in
// which case the defaults are always used.
func NewUserSettings() *UserSettings {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return &UserSettings{UserConfigsPath: dir}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return &UserSettings{}
	}
	return &UserSettings{UserConfigsPath: filepath.Join(configDir, "pixi-devenv")}
}

// ConfigFile returns the path of the user config file.
func (s *UserSettings) ConfigFile() string {
	if s.UserConfigsPath == "" {
		return ""
	}
	return filepath.Join(s.UserConfigsPath, "config.toml")
}
