package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/check"
	"github.com/loadout-dev/loadout/internal/errors"
	"github.com/loadout-dev/loadout/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run health checks over the skill library",
	Long: `check runs every diagnostic over the configured skill library and
prints a severity-grouped report.

Findings can be suppressed permanently via [check].ignore in loadout.toml
using the suppress key shown with --verbose. The command exits nonzero
when any error-severity finding survives.`,
	RunE: runCheck,
}

var checkSeverity string

func init() {
	checkCmd.Flags().StringVarP(&checkSeverity, "severity", "s", "",
		"Minimum severity to report (info, warning, error)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := check.Options{Verbose: verbose}
	if checkSeverity != "" {
		severity, err := check.ParseSeverity(checkSeverity)
		if err != nil {
			return errors.ValidationError(err.Error())
		}
		opts.MinSeverity = severity
	}

	logging.Debug("running checks", "sources", cfg.Sources.Skills, "minSeverity", opts.MinSeverity)

	findings, err := check.Run(cfg, check.NewFSLister(), opts)
	if err != nil {
		return err
	}

	check.Render(os.Stdout, findings)

	if verbose {
		for _, f := range findings {
			logging.Debug("finding", "key", f.SuppressKey, "severity", f.Severity.String())
		}
	}

	if n := check.ErrorCount(findings); n > 0 {
		return errors.ChecksFailed(n)
	}
	return nil
}
