package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/errors"
	"github.com/loadout-dev/loadout/internal/graph"
	"github.com/loadout-dev/loadout/internal/skill"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the skill dependency graph",
	Long: `graph builds the cross-reference graph over all discovered skills and
prints it in the requested format.

Formats: text (analysis summary), dot (Graphviz), json, mermaid.
Referenced skills that do not exist appear as nodes too, so dangling
references stay visible in the output.`,
	RunE: runGraph,
}

var graphFormat string

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "text",
		"Output format (text, dot, json, mermaid)")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	format, err := graph.ParseFormat(graphFormat)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	skills, err := skill.DiscoverAll(cfg.Sources.Skills)
	if err != nil {
		return err
	}

	refs, err := collectRefs(skills)
	if err != nil {
		return err
	}

	g := graph.Build(refs)

	output, err := g.Export(format)
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}
