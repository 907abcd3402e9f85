package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/loadout-dev/loadout/internal/errors"
)

const (
	// ConfigEnvVar overrides the config file location when set.
	ConfigEnvVar = "LOADOUT_CONFIG"

	// ConfigFileName is the config file name under the loadout config dir.
	ConfigFileName = "loadout.toml"

	// SkillFileName is the per-skill metadata and body file.
	SkillFileName = "SKILL.md"

	// MarkerFileName marks a target directory as managed by loadout.
	MarkerFileName = ".managed-by-loadout"
)

// skillNameRegex validates skill names: lowercase alphanumeric runs
// separated by single hyphens.
var skillNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// MaxSkillNameLength is the upper bound on skill name length.
const MaxSkillNameLength = 64

// ValidateSkillName checks if a skill name is valid.
// Valid names:
//   - Contain only lowercase letters, digits, and single hyphens
//   - Do not start or end with a hyphen
//   - Are between 1 and 64 characters long
func ValidateSkillName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}

	if len(name) > MaxSkillNameLength {
		return fmt.Errorf("invalid skill name %q: must be at most %d characters", name, MaxSkillNameLength)
	}

	if !skillNameRegex.MatchString(name) {
		return fmt.Errorf("invalid skill name %q: must be lowercase alphanumeric with single hyphens (e.g. my-skill-name)", name)
	}

	return nil
}

// ProjectSubdirs returns the tool discovery subdirectories managed inside
// each configured project. Returned as a fresh slice so callers cannot
// mutate the canonical set.
func ProjectSubdirs() []string {
	return []string{
		filepath.Join(".claude", "skills"),
		filepath.Join(".opencode", "skills"),
		filepath.Join(".agents", "skills"),
	}
}

// PlaceholderDescriptions returns the literal strings that mark a skill
// description as an unfinished placeholder.
func PlaceholderDescriptions() []string {
	return []string{"Description here", "TODO", "TBD", "FIXME"}
}

// Config is the complete configuration loaded from loadout.toml.
type Config struct {
	Sources  Sources            `toml:"sources"`
	Global   Global             `toml:"global"`
	Projects map[string]Project `toml:"projects"`
	Check    Check              `toml:"check"`
}

// Sources lists the directories searched for skills, in priority order.
type Sources struct {
	Skills []string `toml:"skills"`
}

// Global holds the globally enabled skills and their link targets.
type Global struct {
	Targets []string `toml:"targets"`
	Skills  []string `toml:"skills"`
}

// Project holds per-project skill activation, keyed by project path.
type Project struct {
	Skills  []string `toml:"skills"`
	Inherit *bool    `toml:"inherit"`
}

// InheritsGlobal reports whether the project also links globally enabled
// skills. Defaults to true when unset.
func (p Project) InheritsGlobal() bool {
	return p.Inherit == nil || *p.Inherit
}

// Check holds diagnostic-run settings.
type Check struct {
	// Ignore lists suppression keys ("kind:source[:detail]") of findings
	// to drop from check output.
	Ignore []string `toml:"ignore"`
}

// AllTargets returns every directory loadout manages: global targets plus
// the per-project tool subdirectories.
func (c *Config) AllTargets() []string {
	targets := append([]string(nil), c.Global.Targets...)
	for project := range c.Projects {
		for _, subdir := range ProjectSubdirs() {
			targets = append(targets, filepath.Join(project, subdir))
		}
	}
	return targets
}

// Load reads configuration from the standard location.
//
// Resolution order:
//  1. $LOADOUT_CONFIG (if set)
//  2. $XDG_CONFIG_HOME/loadout/loadout.toml (if XDG_CONFIG_HOME set)
//  3. ~/.config/loadout/loadout.toml (default)
func Load() (*Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("failed to read config file "+path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError("failed to parse config file "+path, err)
	}

	if err := expandPaths(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func resolveConfigPath() (string, error) {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		return ExpandTilde(path)
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, "loadout", ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "loadout", ConfigFileName), nil
}

// ExpandTilde expands a leading ~ or ~/ to the user's home directory.
func ExpandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// expandPaths expands ~ in every path field, including project keys.
func expandPaths(cfg *Config) error {
	for i, source := range cfg.Sources.Skills {
		expanded, err := ExpandTilde(source)
		if err != nil {
			return err
		}
		cfg.Sources.Skills[i] = expanded
	}

	for i, target := range cfg.Global.Targets {
		expanded, err := ExpandTilde(target)
		if err != nil {
			return err
		}
		cfg.Global.Targets[i] = expanded
	}

	if len(cfg.Projects) > 0 {
		projects := make(map[string]Project, len(cfg.Projects))
		for key, project := range cfg.Projects {
			expanded, err := ExpandTilde(key)
			if err != nil {
				return err
			}
			projects[expanded] = project
		}
		cfg.Projects = projects
	}

	return nil
}
