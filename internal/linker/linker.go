package linker

import (
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/errors"
)

// LinkSkill creates a symlink for a skill inside a target directory.
//
// The target directory is created if needed and stamped with the managed
// marker file. An existing symlink pointing at the right source is left
// alone; a wrong-target symlink is replaced. A conflicting entry inside an
// unmanaged directory is refused.
func LinkSkill(skillName, skillPath, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return errors.LinkError("create target directory", err)
	}

	if err := createMarker(targetDir); err != nil {
		return err
	}

	// The skill name comes from user-editable frontmatter; securejoin
	// keeps it from escaping the target directory.
	linkPath, err := securejoin.SecureJoin(targetDir, skillName)
	if err != nil {
		return errors.LinkError("resolve link path", err)
	}

	if info, err := os.Lstat(linkPath); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			current, err := os.Readlink(linkPath)
			if err != nil {
				return errors.LinkError("read existing symlink", err)
			}
			if current == skillPath {
				return nil
			}
		}

		if !IsManaged(targetDir) {
			return errors.New(errors.ExitLinkError,
				fmt.Sprintf("target %s exists and is not managed by loadout", linkPath))
		}

		if err := os.Remove(linkPath); err != nil {
			return errors.LinkError("remove stale entry", err)
		}
	}

	if err := os.Symlink(skillPath, linkPath); err != nil {
		return errors.LinkError("create symlink", err)
	}

	return nil
}

// CleanTarget removes every managed symlink from a target directory along
// with the marker file, then removes the directory itself if empty.
// Unmanaged directories are left untouched. Returns the removed paths.
func CleanTarget(targetDir string) ([]string, error) {
	if !IsManaged(targetDir) {
		return nil, nil
	}

	var removed []string

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, errors.LinkError("read target directory", err)
	}

	for _, entry := range entries {
		if entry.Name() == config.MarkerFileName {
			continue
		}

		path := filepath.Join(targetDir, entry.Name())
		info, err := os.Lstat(path)
		if err != nil {
			return removed, errors.LinkError("stat entry", err)
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if err := os.Remove(path); err != nil {
				return removed, errors.LinkError("remove symlink", err)
			}
			removed = append(removed, path)
		}
	}

	if err := os.Remove(filepath.Join(targetDir, config.MarkerFileName)); err != nil && !os.IsNotExist(err) {
		return removed, errors.LinkError("remove marker", err)
	}

	remaining, err := os.ReadDir(targetDir)
	if err != nil {
		return removed, errors.LinkError("read target directory", err)
	}
	if len(remaining) == 0 {
		if err := os.Remove(targetDir); err != nil {
			return removed, errors.LinkError("remove empty directory", err)
		}
	}

	return removed, nil
}

// IsManaged reports whether a target directory carries the loadout marker.
func IsManaged(targetDir string) bool {
	_, err := os.Stat(filepath.Join(targetDir, config.MarkerFileName))
	return err == nil
}

func createMarker(targetDir string) error {
	markerPath := filepath.Join(targetDir, config.MarkerFileName)
	if _, err := os.Stat(markerPath); err == nil {
		return nil
	}
	if err := os.WriteFile(markerPath, nil, 0644); err != nil {
		return errors.LinkError("create marker file", err)
	}
	return nil
}
