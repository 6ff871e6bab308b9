package configs

import (
	"fmt"
	"os"
	"time"
)

const (
	DefaultFormat         = "toml"
	DefaultDebounceMillis = 300
)

type UserConfig struct {
	Defaults Defaults `toml:"defaults"`
	Watch    Watch    `toml:"watch"`
}

type Defaults struct {
	// Format is the output format of the show command.
	Format string `toml:"format"`
}

type Watch struct {
	DebounceMillis int `toml:"debounce_millis"`
}

// DefaultUserConfig returns the configuration used when no file exists.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Defaults: Defaults{Format: DefaultFormat},
		Watch:    Watch{DebounceMillis: DefaultDebounceMillis},
	}
}

// Debounce returns how long watch waits after a change before updating.
func (c *UserConfig) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMillis) * time.Millisecond
}

// LoadUserConfig loads the user configuration from the config file.
// Missing values keep their defaults.
func LoadUserConfig() (*UserConfig, error) {
	config := DefaultUserConfig()

	configPath := UserDevenvSettings.ConfigFile()
	if configPath == "" {
		return config, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Defaults.Format == "" {
		config.Defaults.Format = DefaultFormat
	}
	if config.Watch.DebounceMillis <= 0 {
		config.Watch.DebounceMillis = DefaultDebounceMillis
	}
	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := UserDevenvSettings.ConfigFile()
	if configPath == "" {
		return fmt.Errorf("failed to save user config: no user config directory")
	}

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}
