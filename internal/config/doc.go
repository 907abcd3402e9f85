// Package config loads and validates loadout configuration.
//
// Configuration lives in loadout.toml:
//
//	[sources]
//	skills = ["~/.config/loadout/skills"]
//
//	[global]
//	targets = ["~/.claude/skills"]
//	skills = ["dev-workflow", "voice"]
//
//	[projects."~/src/my-project"]
//	skills = ["bdd"]
//	inherit = true
//
//	[check]
//	ignore = ["orphaned:scratch-skill"]
//
// The file is resolved from $LOADOUT_CONFIG, then
// $XDG_CONFIG_HOME/loadout/loadout.toml, then
// ~/.config/loadout/loadout.toml. A leading ~ is expanded in every path
// field, including project table keys.
//
// The package also owns the fixed vocabulary shared across commands: the
// SKILL.md file name, the managed-directory marker file, the per-project
// tool subdirectories, and the placeholder description strings.
package config
