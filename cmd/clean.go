package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/config"
	"github.com/loadout-dev/loadout/internal/linker"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove managed symlinks from target directories",
	Long: `clean removes every symlink from target directories that loadout
manages, along with the marker file. Directories without the marker are
never touched.`,
	RunE: runClean,
}

var cleanDryRun bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Show what would be cleaned without changing anything")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cleanDryRun {
		logWarning("[DRY RUN MODE]")
		fmt.Println()
	}

	totalRemoved := 0

	fmt.Println("--- Global scope ---")
	for _, target := range cfg.Global.Targets {
		removed, err := cleanTarget(target)
		if err != nil {
			return err
		}
		totalRemoved += removed
	}

	for _, projectPath := range sortedProjectPaths(cfg) {
		fmt.Printf("\n--- Project: %s\n", projectPath)
		for _, subdir := range config.ProjectSubdirs() {
			removed, err := cleanTarget(filepath.Join(projectPath, subdir))
			if err != nil {
				return err
			}
			totalRemoved += removed
		}
	}

	if !cleanDryRun {
		fmt.Println()
		logSuccess("Done. Removed %d symlinks", totalRemoved)
	}
	return nil
}

func cleanTarget(target string) (int, error) {
	if cleanDryRun {
		if linker.IsManaged(target) {
			fmt.Printf("  [dry-run] would clean: %s\n", target)
		}
		return 0, nil
	}

	removed, err := linker.CleanTarget(target)
	if err != nil {
		return 0, err
	}
	if len(removed) > 0 {
		fmt.Printf("  cleaned: %s (removed %d symlinks)\n", target, len(removed))
	}
	return len(removed), nil
}

func sortedProjectPaths(cfg *config.Config) []string {
	paths := make([]string, 0, len(cfg.Projects))
	for path := range cfg.Projects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
