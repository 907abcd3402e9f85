package linker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loadout-dev/loadout/internal/config"
)

func makeSkillDir(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.SkillFileName), []byte("# "+name), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLinkSkillCreatesSymlinkAndMarker(t *testing.T) {
	root := t.TempDir()
	skillDir := makeSkillDir(t, root, "deploy")
	targetDir := filepath.Join(root, "target")

	if err := LinkSkill("deploy", skillDir, targetDir); err != nil {
		t.Fatalf("LinkSkill failed: %v", err)
	}

	linkPath := filepath.Join(targetDir, "deploy")
	dest, err := os.Readlink(linkPath)
	if err != nil {
		t.Fatalf("expected symlink at %s: %v", linkPath, err)
	}
	if dest != skillDir {
		t.Errorf("symlink points at %q, want %q", dest, skillDir)
	}
	if !IsManaged(targetDir) {
		t.Error("target should be marked as managed")
	}
}

func TestLinkSkillIdempotent(t *testing.T) {
	root := t.TempDir()
	skillDir := makeSkillDir(t, root, "deploy")
	targetDir := filepath.Join(root, "target")

	if err := LinkSkill("deploy", skillDir, targetDir); err != nil {
		t.Fatal(err)
	}
	if err := LinkSkill("deploy", skillDir, targetDir); err != nil {
		t.Fatalf("second LinkSkill failed: %v", err)
	}
}

func TestLinkSkillReplacesStaleSymlink(t *testing.T) {
	root := t.TempDir()
	oldDir := makeSkillDir(t, root, "old")
	newDir := makeSkillDir(t, root, "new")
	targetDir := filepath.Join(root, "target")

	if err := LinkSkill("deploy", oldDir, targetDir); err != nil {
		t.Fatal(err)
	}
	if err := LinkSkill("deploy", newDir, targetDir); err != nil {
		t.Fatalf("replacing stale symlink failed: %v", err)
	}

	dest, err := os.Readlink(filepath.Join(targetDir, "deploy"))
	if err != nil {
		t.Fatal(err)
	}
	if dest != newDir {
		t.Errorf("symlink points at %q, want %q", dest, newDir)
	}
}

func TestLinkSkillRefusesUnmanagedConflict(t *testing.T) {
	root := t.TempDir()
	skillDir := makeSkillDir(t, root, "deploy")
	targetDir := filepath.Join(root, "target")

	// Pre-existing unmanaged directory with a real file where the
	// symlink would go.
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, "deploy"), []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	err := LinkSkill("deploy", skillDir, targetDir)
	if err == nil {
		t.Fatal("expected error for unmanaged conflicting entry")
	}
}

func TestCleanTargetRemovesLinksAndMarker(t *testing.T) {
	root := t.TempDir()
	skillDir := makeSkillDir(t, root, "deploy")
	targetDir := filepath.Join(root, "target")

	if err := LinkSkill("deploy", skillDir, targetDir); err != nil {
		t.Fatal(err)
	}

	removed, err := CleanTarget(targetDir)
	if err != nil {
		t.Fatalf("CleanTarget failed: %v", err)
	}
	if len(removed) != 1 {
		t.Fatalf("removed %d entries, want 1", len(removed))
	}
	if _, err := os.Stat(targetDir); !os.IsNotExist(err) {
		t.Error("empty target directory should be removed")
	}
}

func TestCleanTargetSkipsUnmanaged(t *testing.T) {
	root := t.TempDir()
	targetDir := filepath.Join(root, "target")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, "notes.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	removed, err := CleanTarget(targetDir)
	if err != nil {
		t.Fatalf("CleanTarget failed: %v", err)
	}
	if removed != nil {
		t.Errorf("unmanaged target should be untouched, removed %v", removed)
	}
	if _, err := os.Stat(filepath.Join(targetDir, "notes.txt")); err != nil {
		t.Error("unmanaged file should survive")
	}
}

func TestCleanTargetKeepsForeignFiles(t *testing.T) {
	root := t.TempDir()
	skillDir := makeSkillDir(t, root, "deploy")
	targetDir := filepath.Join(root, "target")

	if err := LinkSkill("deploy", skillDir, targetDir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, "notes.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := CleanTarget(targetDir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(targetDir, "notes.txt")); err != nil {
		t.Error("non-symlink entry should survive clean")
	}
	if _, err := os.Stat(targetDir); err != nil {
		t.Error("non-empty target directory should not be removed")
	}
}
