// Package render writes a consolidated project into a pixi.toml document.
//
// Tables owned by the user are kept; the tables pixi-devenv manages are
// regenerated after a banner comment on every update. User keys nested
// under target or feature, such as tasks, stay in the user part:
//
//	[workspace]
//	name = "app"
//	channels = ["conda-forge"]
//
//	[environments]
//	default = ["py310"]
//
//	# Managed by devenv, changes below this line are overwritten.
//
//	[dependencies]
//	boltons = "24.0,>=24.2"  # From: bootstrap, app
//
// Env vars that reference other variables are rendered once per shell,
// under target.unix and target.win.
package render
