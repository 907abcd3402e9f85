package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_MinimalConfig(t *testing.T) {
	path := writeConfig(t, `
[sources]
skills = ["/opt/loadout/skills"]

[global]
targets = ["/opt/claude/skills"]
skills = ["my-skill"]
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if len(cfg.Sources.Skills) != 1 || cfg.Sources.Skills[0] != "/opt/loadout/skills" {
		t.Errorf("Sources.Skills = %v", cfg.Sources.Skills)
	}
	if len(cfg.Global.Skills) != 1 || cfg.Global.Skills[0] != "my-skill" {
		t.Errorf("Global.Skills = %v", cfg.Global.Skills)
	}
	if len(cfg.Projects) != 0 {
		t.Errorf("Projects = %v, want empty", cfg.Projects)
	}
}

func TestLoadFrom_Projects(t *testing.T) {
	path := writeConfig(t, `
[sources]
skills = ["/opt/loadout/skills"]

[global]
targets = []
skills = ["global-skill"]

[projects."/home/user/my-project"]
skills = ["project-skill"]
inherit = false

[projects."/home/user/other-project"]
skills = []
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	project, ok := cfg.Projects["/home/user/my-project"]
	if !ok {
		t.Fatalf("missing project, got %v", cfg.Projects)
	}
	if project.InheritsGlobal() {
		t.Error("expected inherit = false")
	}

	other := cfg.Projects["/home/user/other-project"]
	if !other.InheritsGlobal() {
		t.Error("inherit should default to true when unset")
	}
}

func TestLoadFrom_CheckIgnore(t *testing.T) {
	path := writeConfig(t, `
[sources]
skills = []

[global]
targets = []
skills = []

[check]
ignore = ["orphaned:scratch", "dangling:a:b"]
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if len(cfg.Check.Ignore) != 2 {
		t.Fatalf("Check.Ignore = %v", cfg.Check.Ignore)
	}
	if cfg.Check.Ignore[0] != "orphaned:scratch" {
		t.Errorf("Check.Ignore[0] = %q", cfg.Check.Ignore[0])
	}
}

func TestLoadFrom_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	path := writeConfig(t, `
[sources]
skills = ["~/.config/loadout/skills", "/opt/skills"]

[global]
targets = ["~/.claude/skills"]
skills = []

[projects."~/my-project"]
skills = []
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := filepath.Join(home, ".config", "loadout", "skills")
	if cfg.Sources.Skills[0] != want {
		t.Errorf("Sources.Skills[0] = %q, want %q", cfg.Sources.Skills[0], want)
	}
	if cfg.Sources.Skills[1] != "/opt/skills" {
		t.Errorf("absolute path should be untouched, got %q", cfg.Sources.Skills[1])
	}
	if _, ok := cfg.Projects[filepath.Join(home, "my-project")]; !ok {
		t.Errorf("project key not expanded: %v", cfg.Projects)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom("/nonexistent/loadout.toml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "invalid toml content [[[")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSkillName(t *testing.T) {
	valid := []string{"skill", "my-skill", "test-skill-123", "a", "skill-1-2-3"}
	for _, name := range valid {
		if err := ValidateSkillName(name); err != nil {
			t.Errorf("ValidateSkillName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"My-Skill",  // uppercase
		"my_skill",  // underscore
		"my--skill", // double hyphen
		"-my-skill", // leading hyphen
		"my-skill-", // trailing hyphen
		"my skill",  // space
		"my.skill",  // dot
		"",          // empty
		strings.Repeat("a", 65), // too long
	}
	for _, name := range invalid {
		if err := ValidateSkillName(name); err == nil {
			t.Errorf("ValidateSkillName(%q) = nil, want error", name)
		}
	}
}

func TestAllTargets(t *testing.T) {
	cfg := &Config{
		Global: Global{Targets: []string{"/g1", "/g2"}},
		Projects: map[string]Project{
			"/home/user/proj": {},
		},
	}

	targets := cfg.AllTargets()

	if len(targets) != 5 {
		t.Fatalf("AllTargets() = %v, want 5 entries", targets)
	}
	found := false
	for _, target := range targets {
		if target == filepath.Join("/home/user/proj", ".claude", "skills") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing project subdir target in %v", targets)
	}
}
