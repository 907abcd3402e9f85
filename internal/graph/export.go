package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects a graph export format.
type Format string

const (
	FormatText    Format = "text"
	FormatDot     Format = "dot"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
)

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "dot":
		return FormatDot, nil
	case "json":
		return FormatJSON, nil
	case "mermaid":
		return FormatMermaid, nil
	default:
		return "", fmt.Errorf("unknown graph format %q (want text, dot, json, or mermaid)", s)
	}
}

// Export renders the graph in the given format.
func (g *SkillGraph) Export(format Format) (string, error) {
	switch format {
	case FormatText:
		return g.ToText(), nil
	case FormatDot:
		return g.ToDot(), nil
	case FormatJSON:
		return g.ToJSON()
	case FormatMermaid:
		return g.ToMermaid(), nil
	default:
		return "", fmt.Errorf("unknown graph format %q", format)
	}
}

// ToText renders a human-readable summary with a sorted adjacency list.
func (g *SkillGraph) ToText() string {
	var b strings.Builder

	b.WriteString("# Skill Dependency Graph\n\n")
	fmt.Fprintf(&b, "Skills: %d\n", len(g.nodes))
	fmt.Fprintf(&b, "Clusters: %d\n", len(g.Clusters))
	fmt.Fprintf(&b, "Roots: %d\n", len(g.Roots))
	fmt.Fprintf(&b, "Leaves: %d\n", len(g.Leaves))
	fmt.Fprintf(&b, "Bridges: %d\n\n", len(g.Bridges))

	b.WriteString("## Dependencies\n\n")
	for _, name := range g.nodes {
		targets := g.Neighbors(name)
		if len(targets) == 0 {
			fmt.Fprintf(&b, "%s: (none)\n", name)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(targets, ", "))
		}
	}

	return b.String()
}

// ToDot renders Graphviz DOT with nodes colored by role.
func (g *SkillGraph) ToDot() string {
	var b strings.Builder

	b.WriteString("digraph SkillGraph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, name := range g.nodes {
		color := "white"
		switch {
		case g.isRoot(name):
			color = "lightblue"
		case g.isLeaf(name):
			color = "lightgreen"
		case g.isBridge(name):
			color = "orange"
		}
		fmt.Fprintf(&b, "  %q [fillcolor=%s, style=\"rounded,filled\"];\n", name, color)
	}

	b.WriteString("\n")

	for _, source := range g.nodes {
		for _, target := range g.Neighbors(source) {
			fmt.Fprintf(&b, "  %q -> %q;\n", source, target)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

type jsonNode struct {
	ID       string `json:"id"`
	IsRoot   bool   `json:"is_root"`
	IsLeaf   bool   `json:"is_leaf"`
	IsBridge bool   `json:"is_bridge"`
}

type jsonEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type jsonGraph struct {
	Nodes    []jsonNode `json:"nodes"`
	Edges    []jsonEdge `json:"edges"`
	Clusters [][]string `json:"clusters"`
}

// ToJSON renders nodes with role flags, edges, and clusters.
func (g *SkillGraph) ToJSON() (string, error) {
	doc := jsonGraph{
		Nodes:    make([]jsonNode, 0, len(g.nodes)),
		Edges:    []jsonEdge{},
		Clusters: g.Clusters,
	}
	if doc.Clusters == nil {
		doc.Clusters = [][]string{}
	}

	for _, name := range g.nodes {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID:       name,
			IsRoot:   g.isRoot(name),
			IsLeaf:   g.isLeaf(name),
			IsBridge: g.isBridge(name),
		})
		for _, target := range g.Neighbors(name) {
			doc.Edges = append(doc.Edges, jsonEdge{Source: name, Target: target})
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode graph: %w", err)
	}
	return string(data), nil
}

// ToMermaid renders a Mermaid flowchart. Node identifiers replace hyphens
// with underscores; display labels keep the original name.
func (g *SkillGraph) ToMermaid() string {
	var b strings.Builder

	b.WriteString("graph LR\n")
	for _, source := range g.nodes {
		for _, target := range g.Neighbors(source) {
			fmt.Fprintf(&b, "  %s[%s] --> %s[%s]\n",
				mermaidID(source), source, mermaidID(target), target)
		}
	}

	return b.String()
}

func mermaidID(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
