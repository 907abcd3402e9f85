// Package linker manages skill symlinks inside target directories.
//
// A directory is only ever modified when it carries the loadout marker
// file, so targets set up by hand are never clobbered.
package linker
