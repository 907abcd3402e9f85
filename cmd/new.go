package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/errors"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new skill from the template",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

var (
	newDescription string
	newEdit        bool
)

func init() {
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Skill description for the frontmatter")
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "Open the new SKILL.md in $EDITOR")
	rootCmd.AddCommand(newCmd)
}

const skillTemplate = `---
name: {name}
description: >-
  {description}
# tags: []
---

# {name}

TODO: Add your skill content here.

## Instructions

Write your instructions for the AI agent. You can use:
- Plain text
- Markdown formatting
- Code blocks
- XML structures (optional)
`

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := config.ValidateSkillName(name); err != nil {
		return errors.ValidationError(err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Sources.Skills) == 0 {
		return errors.ValidationError("no source directories configured")
	}
	sourceDir := cfg.Sources.Skills[0]

	skillDir := filepath.Join(sourceDir, name)
	if _, err := os.Stat(skillDir); err == nil {
		return errors.ValidationError(fmt.Sprintf("skill directory already exists: %s", skillDir))
	}

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		return fmt.Errorf("failed to create skill directory %s: %w", skillDir, err)
	}

	description := newDescription
	if description == "" {
		description = "Description for " + name
	}

	content := strings.NewReplacer(
		"{name}", name,
		"{description}", description,
	).Replace(skillTemplate)

	skillFile := filepath.Join(skillDir, config.SkillFileName)
	if err := os.WriteFile(skillFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", skillFile, err)
	}

	logSuccess("Created skill: %s", name)
	fmt.Printf("  Path: %s\n", skillDir)
	fmt.Printf("  File: %s\n", skillFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Edit %s\n", skillFile)
	fmt.Printf("  2. Add '%s' to %s [global] skills\n", name, config.ConfigFileName)
	fmt.Println("  3. Run `loadout install` to link it")

	if newEdit {
		return openEditor(skillFile)
	}
	return nil
}

// openEditor runs $EDITOR on a file. The variable may contain flags
// ("code --wait"), so it is split shell-style.
func openEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.ValidationError("$EDITOR is not set")
	}

	parts, err := shellquote.Split(editor)
	if err != nil {
		return errors.ValidationError(fmt.Sprintf("cannot parse $EDITOR: %v", err))
	}

	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}
