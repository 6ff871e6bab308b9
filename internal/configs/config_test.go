package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func useConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := UserDevenvSettings
	UserDevenvSettings = &UserSettings{UserConfigsPath: dir}
	t.Cleanup(func() {
		UserDevenvSettings = old
	})
}

func TestLoadUserConfigDefaults(t *testing.T) {
	useConfigDir(t, t.TempDir())

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Defaults.Format != DefaultFormat {
		t.Errorf("Expected format %q, got %q", DefaultFormat, config.Defaults.Format)
	}
	if config.Debounce() != 300*time.Millisecond {
		t.Errorf("Expected debounce of 300ms, got %v", config.Debounce())
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	useConfigDir(t, filepath.Join(t.TempDir(), "nested"))

	config := DefaultUserConfig()
	config.Defaults.Format = "yaml"
	config.Watch.DebounceMillis = 50
	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestLoadUserConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	useConfigDir(t, dir)
	contents := "[defaults]\nformat = \"json\"\n\n[watch]\ndebounce_millis = 0\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Defaults.Format != "json" {
		t.Errorf("Expected format json, got %q", config.Defaults.Format)
	}
	if config.Watch.DebounceMillis != DefaultDebounceMillis {
		t.Errorf("Expected default debounce, got %d", config.Watch.DebounceMillis)
	}
}

func TestLoadUserConfigInvalidFile(t *testing.T) {
	dir := t.TempDir()
	useConfigDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[defaults\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadUserConfig(); err == nil {
		t.Fatal("Expected error for invalid config, got nil")
	}
}

func TestNewUserSettingsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	settings := NewUserSettings()
	if settings.UserConfigsPath != dir {
		t.Errorf("Expected config path %q, got %q", dir, settings.UserConfigsPath)
	}
	if settings.ConfigFile() != filepath.Join(dir, "config.toml") {
		t.Errorf("Unexpected config file %q", settings.ConfigFile())
	}
}

func TestSaveUserConfigWithoutDirectory(t *testing.T) {
	useConfigDir(t, "")

	if err := SaveUserConfig(DefaultUserConfig()); err == nil {
		t.Fatal("Expected error without a config directory, got nil")
	}
}
