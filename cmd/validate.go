package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/errors"
	"github.com/loadout-dev/loadout/internal/skill"
)

var validateCmd = &cobra.Command{
	Use:   "validate [name-or-directory]",
	Short: "Validate SKILL.md files",
	Long: `validate checks SKILL.md frontmatter against the naming and metadata
rules.

With no argument every skill in the configured sources is validated.
The argument may be a skill name (resolved against the sources) or a
directory to validate recursively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	validated := 0
	failed := 0

	report := func(sk *skill.Skill) {
		validated++
		if err := validateSkill(sk); err != nil {
			fmt.Printf("  ✗ %s - %v\n", sk.Name, err)
			failed++
			return
		}
		fmt.Printf("  ✓ %s\n", sk.Name)
	}

	switch {
	case len(args) == 0:
		fmt.Println("Validating all skills from configured sources...")
		fmt.Println()
		for _, source := range cfg.Sources.Skills {
			fmt.Printf("Source: %s\n", source)
			skills, err := skill.DiscoverIn(source)
			if err != nil {
				return err
			}
			for _, sk := range skills {
				report(sk)
			}
		}

	case isDirectory(args[0]):
		fmt.Printf("Validating skills in: %s\n\n", args[0])
		skills, err := skill.DiscoverIn(args[0])
		if err != nil {
			return err
		}
		for _, sk := range skills {
			report(sk)
		}

	default:
		fmt.Printf("Validating skill: %s\n\n", args[0])
		sk, err := skill.Resolve(cfg.Sources.Skills, args[0])
		if err != nil {
			return err
		}
		report(sk)
	}

	fmt.Println()
	if failed > 0 {
		logError("%d errors in %d skills", failed, validated)
		return errors.ValidationError(fmt.Sprintf("validation failed: %d of %d skills invalid", failed, validated))
	}
	logSuccess("%d skills validated", validated)
	return nil
}

func validateSkill(sk *skill.Skill) error {
	if err := sk.Frontmatter.Validate(); err != nil {
		return err
	}
	return sk.Frontmatter.ValidateDirectoryName(filepath.Base(sk.Path))
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
