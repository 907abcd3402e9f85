package check

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/errors"
)

// Entry describes one item inside a target directory, with everything the
// symlink checks need already resolved.
type Entry struct {
	Name      string
	Path      string
	IsSymlink bool
	IsDir     bool

	// Reachable reports whether a symlink's destination exists. Always
	// true for non-symlinks.
	Reachable bool

	// HasMarker reports whether a directory entry contains the loadout
	// marker file. Always false for non-directories.
	HasMarker bool
}

// DirLister enumerates target directory contents. The filesystem
// implementation is the only one used outside tests.
type DirLister interface {
	// List returns the entries of dir in name order. A missing dir
	// yields (nil, nil); any other I/O failure is an error.
	List(dir string) ([]Entry, error)
}

type fsLister struct{}

// NewFSLister returns a DirLister backed by the real filesystem.
func NewFSLister() DirLister {
	return fsLister{}
}

func (fsLister) List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to read target directory "+dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())
		entry := Entry{
			Name: de.Name(),
			Path: path,
		}

		info, err := os.Lstat(path)
		if err != nil {
			return nil, errors.Wrap(errors.ExitGeneralError, "failed to stat "+path, err)
		}

		if info.Mode()&os.ModeSymlink != 0 {
			entry.IsSymlink = true
			_, statErr := os.Stat(path)
			entry.Reachable = statErr == nil
		} else {
			entry.Reachable = true
			if info.IsDir() {
				entry.IsDir = true
				_, markerErr := os.Stat(filepath.Join(path, config.MarkerFileName))
				entry.HasMarker = markerErr == nil
			}
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
