package skill

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/errors"
	"github.com/loadout-dev/loadout/internal/logging"
)

// Skill is a discovered skill with its parsed metadata.
type Skill struct {
	// Name is the skill name from frontmatter.
	Name string

	// Path is the skill directory containing SKILL.md.
	Path string

	// SkillFile is the path to the SKILL.md file.
	SkillFile string

	// Frontmatter is the parsed metadata block.
	Frontmatter *Frontmatter
}

// FromDirectory loads a skill from a directory containing SKILL.md.
func FromDirectory(path string) (*Skill, error) {
	skillFile := filepath.Join(path, config.SkillFileName)

	if _, err := os.Stat(skillFile); err != nil {
		return nil, fmt.Errorf("no %s found in skill directory %s", config.SkillFileName, path)
	}

	fm, err := ParseFrontmatterFile(skillFile)
	if err != nil {
		return nil, err
	}

	return &Skill{
		Name:        fm.Name,
		Path:        path,
		SkillFile:   skillFile,
		Frontmatter: fm,
	}, nil
}

// ReadBody returns the SKILL.md body content (everything after the
// frontmatter block). A missing body file is a hard error.
func (s *Skill) ReadBody() (string, error) {
	data, err := os.ReadFile(s.SkillFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.SkillFile, err)
	}
	return Body(string(data)), nil
}

// DiscoverAll walks every source directory and returns all discovered
// skills. A skill whose metadata fails to parse is logged and skipped;
// it never aborts discovery.
func DiscoverAll(sources []string) ([]*Skill, error) {
	var skills []*Skill

	for _, source := range sources {
		discovered, err := DiscoverIn(source)
		if err != nil {
			return nil, err
		}
		skills = append(skills, discovered...)
	}

	return skills, nil
}

// DiscoverIn walks a single source directory for skill directories.
// Hidden directories are skipped; non-existent sources yield no skills.
func DiscoverIn(source string) ([]*Skill, error) {
	if _, err := os.Stat(source); err != nil {
		return nil, nil
	}

	var skills []*Skill

	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", source, err)
		}

		if d.IsDir() && path != source && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		if d.IsDir() || d.Name() != config.SkillFileName {
			return nil
		}

		skillDir := filepath.Dir(path)
		sk, loadErr := FromDirectory(skillDir)
		if loadErr != nil {
			logging.Warn("skipping skill", "path", skillDir, "error", loadErr)
			return nil
		}
		skills = append(skills, sk)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return skills, nil
}

// Resolve finds a skill by directory name, searching sources in order and
// returning the first match.
func Resolve(sources []string, name string) (*Skill, error) {
	for _, source := range sources {
		skills, err := DiscoverIn(source)
		if err != nil {
			return nil, err
		}
		for _, sk := range skills {
			if filepath.Base(sk.Path) == name {
				return sk, nil
			}
		}
	}
	return nil, errors.SkillNotFound(name)
}

// BuildMap indexes skills by name. Later entries do not displace earlier
// ones, preserving source priority order.
func BuildMap(skills []*Skill) map[string]*Skill {
	m := make(map[string]*Skill, len(skills))
	for _, sk := range skills {
		if _, exists := m[sk.Name]; !exists {
			m[sk.Name] = sk
		}
	}
	return m
}

// KnownNames returns the set of discovered skill names.
func KnownNames(skills []*Skill) map[string]bool {
	names := make(map[string]bool, len(skills))
	for _, sk := range skills {
		names[sk.Name] = true
	}
	return names
}
