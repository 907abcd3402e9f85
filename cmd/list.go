package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/loadout-dev/loadout/internal/skill"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List enabled skills per scope",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	skills, err := skill.DiscoverAll(cfg.Sources.Skills)
	if err != nil {
		return err
	}
	skillMap := skill.BuildMap(skills)

	fmt.Println("--- Global scope ---")
	fmt.Printf("Skills: %d\n", len(cfg.Global.Skills))
	for _, name := range cfg.Global.Skills {
		printSkillLine(name, skillMap, "")
	}

	globalSet := make(map[string]bool, len(cfg.Global.Skills))
	for _, name := range cfg.Global.Skills {
		globalSet[name] = true
	}

	for _, projectPath := range sortedProjectPaths(cfg) {
		project := cfg.Projects[projectPath]
		fmt.Printf("\n--- Project: %s\n", projectPath)

		var names []string
		if project.InheritsGlobal() {
			names = append(names, cfg.Global.Skills...)
		}
		names = append(names, project.Skills...)
		sort.Strings(names)
		names = dedupe(names)

		fmt.Printf("Skills: %d (inherit: %t)\n", len(names), project.InheritsGlobal())
		for _, name := range names {
			scope := "project"
			if globalSet[name] {
				scope = "global"
			}
			printSkillLine(name, skillMap, scope)
		}
	}

	return nil
}

func printSkillLine(name string, skillMap map[string]*skill.Skill, scope string) {
	sk, ok := skillMap[name]
	if !ok {
		fmt.Printf("  ✗ %s (not found)\n", name)
		return
	}
	if scope != "" {
		fmt.Printf("  ✓ %s (%s, %s)\n", name, scope, sk.Path)
		return
	}
	fmt.Printf("  ✓ %s (%s)\n", name, sk.Path)
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
