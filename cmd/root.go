package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "loadout",
	Short: "Agent skill library manager and analyzer",
	Long: `loadout manages a library of agent skills stored as SKILL.md files.

It links skills into tool-specific target directories via symlinks,
analyzes cross-references between skills, and runs diagnostics over
the whole library:
  - loadout install   link configured skills into targets
  - loadout check     run health checks and print ranked findings
  - loadout graph     export the skill dependency graph`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
