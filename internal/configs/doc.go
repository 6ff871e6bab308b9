// Package configs manages the user configuration of pixi-devenv.
//
// Configuration is stored in TOML format at:
//
//   - $PIXI_DEVENV_CONFIG_DIR/config.toml when the variable is set
//   - <user config dir>/pixi-devenv/config.toml otherwise
//
// # User Configuration
//
// The user config stores defaults for commands:
//   - The output format of `pixi-devenv show` (toml, json or yaml)
//   - How long `pixi-devenv watch` waits for changes to settle
//
// A missing file, or a missing key, falls back to DefaultUserConfig().
//
// # Settings
//
// UserDevenvSettings holds the resolved configuration directory. It is set
// at startup and can be replaced in tests.
package configs
