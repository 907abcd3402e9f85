package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/errors"
	"github.com/loadout-dev/loadout/internal/linker"
	"github.com/loadout-dev/loadout/internal/logging"
	"github.com/loadout-dev/loadout/internal/skill"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Link configured skills into target directories",
	Long: `install creates symlinks for every configured skill.

Global skills are linked into each [global].targets directory. Project
skills are linked into the tool subdirectories of each [projects] entry;
projects also receive the global skills unless they set inherit = false.`,
	RunE: runInstall,
}

var installDryRun bool

func init() {
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be linked without changing anything")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	skills, err := skill.DiscoverAll(cfg.Sources.Skills)
	if err != nil {
		return err
	}
	skillMap := skill.BuildMap(skills)

	if installDryRun {
		logWarning("[DRY RUN MODE]")
		fmt.Println()
	}

	fmt.Println("--- Global scope ---")
	for _, target := range cfg.Global.Targets {
		fmt.Printf("Target: %s\n", target)
		for _, name := range cfg.Global.Skills {
			if err := installSkill(name, skillMap, target); err != nil {
				return err
			}
		}
	}

	projectPaths := sortedProjectPaths(cfg)
	for _, projectPath := range projectPaths {
		project := cfg.Projects[projectPath]
		fmt.Printf("\n--- Project: %s\n", projectPath)

		for _, subdir := range config.ProjectSubdirs() {
			target := filepath.Join(projectPath, subdir)
			fmt.Printf("Target: %s\n", target)

			if project.InheritsGlobal() {
				for _, name := range cfg.Global.Skills {
					if err := installSkill(name, skillMap, target); err != nil {
						return err
					}
				}
			}
			for _, name := range project.Skills {
				if err := installSkill(name, skillMap, target); err != nil {
					return err
				}
			}
		}
	}

	if !installDryRun {
		fmt.Println()
		logSuccess("Done.")
	}
	return nil
}

func installSkill(name string, skillMap map[string]*skill.Skill, target string) error {
	sk, ok := skillMap[name]
	if !ok {
		return errors.SkillNotFound(name)
	}

	if installDryRun {
		fmt.Printf("  [dry-run] %s -> %s\n", sk.Path, filepath.Join(target, name))
		return nil
	}

	logging.Debug("linking skill", "name", name, "target", target)
	if err := linker.LinkSkill(name, sk.Path, target); err != nil {
		return err
	}

	fmt.Printf("  linked: %s -> %s\n", name, target)
	return nil
}
