package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/errors"
	"github.com/loadout-dev/loadout/internal/linker"
	"github.com/loadout-dev/loadout/internal/skill"
)

// testEnv holds test environment state
type testEnv struct {
	tmpDir    string
	sourceDir string
	globalDir string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	env := &testEnv{
		tmpDir:    tmpDir,
		sourceDir: filepath.Join(tmpDir, "skills"),
		globalDir: filepath.Join(tmpDir, "global"),
	}

	if err := os.MkdirAll(env.sourceDir, 0755); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e *testEnv) addSkill(t *testing.T, name, description, body string) {
	t.Helper()

	dir := filepath.Join(e.sourceDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := fmt.Sprintf("---\nname: %s\ndescription: %s\n---\n\n%s\n", name, description, body)
	if err := os.WriteFile(filepath.Join(dir, config.SkillFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) writeConfig(t *testing.T, body string) {
	t.Helper()

	path := filepath.Join(e.tmpDir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.ConfigEnvVar, path)
}

func (e *testEnv) globalConfig(t *testing.T, skillNames ...string) {
	t.Helper()

	e.writeConfig(t, fmt.Sprintf(`[sources]
skills = [%q]

[global]
targets = [%q]
skills = [%s]
`, e.sourceDir, e.globalDir, quoteList(skillNames)))
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}

func TestInstallLinksGlobalSkills(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "test-skill", "A skill for testing", "Body content.")
	env.globalConfig(t, "test-skill")

	if err := runInstall(nil, nil); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	link := filepath.Join(env.globalDir, "test-skill")
	dest, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("expected symlink at %s: %v", link, err)
	}
	if dest != filepath.Join(env.sourceDir, "test-skill") {
		t.Errorf("symlink points at %q", dest)
	}
	if !linker.IsManaged(env.globalDir) {
		t.Error("global target should carry the marker")
	}
}

func TestInstallFailsForUnknownSkill(t *testing.T) {
	env := setupTestEnv(t)
	env.globalConfig(t, "nonexistent")

	err := runInstall(nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown skill")
	}
	if errors.GetExitCode(err) != errors.ExitSkillNotFound {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitSkillNotFound)
	}
}

func TestInstallProjectInheritance(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "global-skill", "Linked everywhere", "Body.")
	env.addSkill(t, "project-skill", "Project only", "Body.")
	projectDir := filepath.Join(env.tmpDir, "project")

	env.writeConfig(t, fmt.Sprintf(`[sources]
skills = [%q]

[global]
targets = []
skills = ["global-skill"]

[projects.%q]
skills = ["project-skill"]
`, env.sourceDir, projectDir))

	if err := runInstall(nil, nil); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	for _, subdir := range config.ProjectSubdirs() {
		target := filepath.Join(projectDir, subdir)
		for _, name := range []string{"global-skill", "project-skill"} {
			if _, err := os.Lstat(filepath.Join(target, name)); err != nil {
				t.Errorf("missing link %s in %s", name, target)
			}
		}
	}
}

func TestInstallRespectsInheritFalse(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "global-skill", "Linked everywhere", "Body.")
	env.addSkill(t, "project-skill", "Project only", "Body.")
	projectDir := filepath.Join(env.tmpDir, "project")

	env.writeConfig(t, fmt.Sprintf(`[sources]
skills = [%q]

[global]
targets = []
skills = ["global-skill"]

[projects.%q]
skills = ["project-skill"]
inherit = false
`, env.sourceDir, projectDir))

	if err := runInstall(nil, nil); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	target := filepath.Join(projectDir, ".claude/skills")
	if _, err := os.Lstat(filepath.Join(target, "global-skill")); err == nil {
		t.Error("global skill linked despite inherit = false")
	}
	if _, err := os.Lstat(filepath.Join(target, "project-skill")); err != nil {
		t.Error("project skill should still be linked")
	}
}

func TestInstallDryRunCreatesNothing(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "test-skill", "A skill for testing", "Body.")
	env.globalConfig(t, "test-skill")

	installDryRun = true
	defer func() { installDryRun = false }()

	if err := runInstall(nil, nil); err != nil {
		t.Fatalf("dry-run install failed: %v", err)
	}
	if _, err := os.Stat(env.globalDir); !os.IsNotExist(err) {
		t.Error("dry-run should not create the target directory")
	}
}

func TestCleanRemovesManagedLinks(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "test-skill", "A skill for testing", "Body.")
	env.globalConfig(t, "test-skill")

	if err := runInstall(nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := runClean(nil, nil); err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	if _, err := os.Stat(env.globalDir); !os.IsNotExist(err) {
		t.Error("emptied target directory should be removed")
	}
}

func TestCheckCommandFailsOnDanglingReference(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "a", "Refers to a missing skill", `See also <see ref="b">.`)
	env.globalConfig(t, "a")

	err := runCheck(nil, nil)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if errors.GetExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", errors.GetExitCode(err))
	}
}

func TestCheckCommandPassesOnCleanLibrary(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "a", "A perfectly healthy skill", "Nothing but prose.")
	env.globalConfig(t, "a")

	if err := runCheck(nil, nil); err != nil {
		t.Errorf("check failed on clean library: %v", err)
	}
}

func TestNewCreatesSkillFromTemplate(t *testing.T) {
	env := setupTestEnv(t)
	env.globalConfig(t)

	if err := runNew(nil, []string{"my-skill"}); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	skillFile := filepath.Join(env.sourceDir, "my-skill", config.SkillFileName)
	data, err := os.ReadFile(skillFile)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "name: my-skill") {
		t.Errorf("template not filled in:\n%s", content)
	}
	if !strings.Contains(content, "Description for my-skill") {
		t.Errorf("default description missing:\n%s", content)
	}

	// The generated file must parse.
	if _, err := skill.FromDirectory(filepath.Join(env.sourceDir, "my-skill")); err != nil {
		t.Errorf("generated skill does not parse: %v", err)
	}
}

func TestNewRejectsExistingSkill(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "my-skill", "Already present", "Body.")
	env.globalConfig(t)

	err := runNew(nil, []string{"my-skill"})
	if err == nil {
		t.Fatal("expected error for existing skill")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v", err)
	}
}

func TestNewRejectsInvalidName(t *testing.T) {
	env := setupTestEnv(t)
	env.globalConfig(t)

	for _, name := range []string{"My-Skill", "my_skill", "-leading", "trailing-"} {
		if err := runNew(nil, []string{name}); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestValidateReportsDirectoryMismatch(t *testing.T) {
	env := setupTestEnv(t)
	env.globalConfig(t)

	// Frontmatter name differs from the directory name.
	dir := filepath.Join(env.sourceDir, "wrong-dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: right-name\ndescription: A mismatched skill\n---\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, config.SkillFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := runValidate(nil, nil)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if errors.GetExitCode(err) != errors.ExitValidation {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitValidation)
	}
}

func TestValidateAcceptsHealthySkills(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "good-skill", "A thoroughly valid skill", "Body.")
	env.globalConfig(t, "good-skill")

	if err := runValidate(nil, nil); err != nil {
		t.Errorf("validate failed: %v", err)
	}
}

func TestCollectRefs(t *testing.T) {
	env := setupTestEnv(t)
	env.addSkill(t, "a", "References its sibling", `Use the `+"`b`"+` skill when done.`)
	env.addSkill(t, "b", "Referenced by a", "Standalone body.")

	skills, err := skill.DiscoverAll([]string{env.sourceDir})
	if err != nil {
		t.Fatal(err)
	}

	refs, err := collectRefs(skills)
	if err != nil {
		t.Fatal(err)
	}

	if len(refs["a"]) == 0 || refs["a"][0].Target != "b" {
		t.Errorf("refs for a = %+v, want reference to b", refs["a"])
	}
	if _, ok := refs["b"]; ok {
		t.Errorf("b has no references, got %+v", refs["b"])
	}
}
