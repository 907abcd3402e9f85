package cmd

import (
	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/check"
	"github.com/loadout-dev/loadout/internal/skill"
	"github.com/loadout-dev/loadout/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse skills interactively",
	Long: `browse opens an interactive skill browser. Each skill shows its
cross-references in both directions and the findings the checks raised
for it.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	skills, err := skill.DiscoverAll(cfg.Sources.Skills)
	if err != nil {
		return err
	}

	if len(skills) == 0 {
		logInfo("No skills found. Create one with: loadout new <name>")
		return nil
	}

	refs, err := collectRefs(skills)
	if err != nil {
		return err
	}

	// Browser context only; a failing check run should not block browsing.
	findings, err := check.Run(cfg, check.NewFSLister(), check.Options{})
	if err != nil {
		findings = nil
	}

	return tui.RunBrowser(tui.BrowserData{
		Skills:   skills,
		Refs:     refs,
		Findings: findings,
	})
}
