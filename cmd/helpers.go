package cmd

import (
	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/crossref"
	"github.com/loadout-dev/loadout/internal/skill"
)

// loadConfig resolves and loads loadout.toml.
// This is a helper to reduce repetition in commands.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// collectRefs extracts cross-references from every skill body. Skills
// without references get no map entry.
func collectRefs(skills []*skill.Skill) (map[string][]crossref.CrossRef, error) {
	refs := make(map[string][]crossref.CrossRef)
	for _, sk := range skills {
		body, err := sk.ReadBody()
		if err != nil {
			return nil, err
		}
		if found := crossref.Extract(body, sk.Name); len(found) > 0 {
			refs[sk.Name] = found
		}
	}
	return refs, nil
}
