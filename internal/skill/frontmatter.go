package skill

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loadout-dev/loadout/internal/config"
)

const (
	minDescriptionLength = 1
	maxDescriptionLength = 1024
)

// Frontmatter is the YAML metadata block at the top of a SKILL.md file.
//
// It represents the union of all supported fields across the tools loadout
// links into; only name and description are required.
type Frontmatter struct {
	// Name is the skill identifier; must match the directory name.
	Name string `yaml:"name"`

	// Description says what the skill does and when to use it.
	Description string `yaml:"description"`

	// Tags classify the skill for browsing and metadata checks.
	Tags []string `yaml:"tags,omitempty"`

	// Pipeline maps pipeline names to this skill's stage in each.
	Pipeline map[string]PipelineStage `yaml:"pipeline,omitempty"`

	// Tool-compat passthrough fields.
	DisableModelInvocation *bool             `yaml:"disable-model-invocation,omitempty"`
	UserInvocable          *bool             `yaml:"user-invocable,omitempty"`
	AllowedTools           string            `yaml:"allowed-tools,omitempty"`
	Context                string            `yaml:"context,omitempty"`
	Agent                  string            `yaml:"agent,omitempty"`
	Model                  string            `yaml:"model,omitempty"`
	ArgumentHint           string            `yaml:"argument-hint,omitempty"`
	License                string            `yaml:"license,omitempty"`
	Compatibility          string            `yaml:"compatibility,omitempty"`
	Metadata               map[string]string `yaml:"metadata,omitempty"`
}

// PipelineStage declares a skill's position inside one named pipeline.
type PipelineStage struct {
	Stage  string   `yaml:"stage"`
	Order  uint     `yaml:"order"`
	After  []string `yaml:"after,omitempty"`
	Before []string `yaml:"before,omitempty"`
}

// ParseFrontmatterFile reads a SKILL.md file and parses its frontmatter.
func ParseFrontmatterFile(path string) (*Frontmatter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseFrontmatter(string(data))
}

// ParseFrontmatter parses and validates the YAML frontmatter block from
// SKILL.md content.
func ParseFrontmatter(content string) (*Frontmatter, error) {
	yamlContent, err := extractYAML(content)
	if err != nil {
		return nil, err
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, fmt.Errorf("invalid YAML frontmatter: %w", err)
	}

	if err := fm.Validate(); err != nil {
		return nil, err
	}

	return &fm, nil
}

// Validate checks the required frontmatter fields.
func (f *Frontmatter) Validate() error {
	if err := config.ValidateSkillName(f.Name); err != nil {
		return err
	}

	descLen := len(strings.TrimSpace(f.Description))
	if descLen < minDescriptionLength || descLen > maxDescriptionLength {
		return fmt.Errorf("invalid description length %d: must be %d-%d characters",
			descLen, minDescriptionLength, maxDescriptionLength)
	}

	return nil
}

// ValidateDirectoryName checks that the frontmatter name matches the
// containing directory.
func (f *Frontmatter) ValidateDirectoryName(dirName string) error {
	if f.Name != dirName {
		return fmt.Errorf("skill name %q does not match directory name %q", f.Name, dirName)
	}
	return nil
}

// HasTags reports whether the skill declares at least one tag.
func (f *Frontmatter) HasTags() bool {
	return len(f.Tags) > 0
}

// HasPipeline reports whether the skill belongs to any pipeline.
func (f *Frontmatter) HasPipeline() bool {
	return len(f.Pipeline) > 0
}

// Body returns the content after the frontmatter block. If the content has
// no frontmatter delimiters the whole string is returned.
func Body(content string) string {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			start = i
			break
		}
	}
	if start < 0 {
		return content
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[i+1:], "\n")
		}
	}
	return content
}

// extractYAML returns the content between the first pair of --- delimiters.
func extractYAML(content string) (string, error) {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			start = i
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("SKILL.md does not contain YAML frontmatter delimiters (---)")
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[start+1:i], "\n"), nil
		}
	}
	return "", fmt.Errorf("SKILL.md does not contain YAML frontmatter delimiters (---)")
}
