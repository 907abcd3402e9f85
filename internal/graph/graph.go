package graph

import (
	"sort"

	"github.com/loadout-dev/loadout/internal/crossref"
)

// SkillGraph is a directed reference graph over skill names with derived
// structural analysis.
type SkillGraph struct {
	// nodes holds every skill name, including phantom targets that no
	// discovered skill declares.
	nodes []string

	// edges maps each node to its outgoing neighbor set.
	edges map[string]map[string]bool

	// Clusters are strongly connected components of size >= 2.
	Clusters [][]string

	// Roots are nodes with no incoming edges.
	Roots []string

	// Leaves are nodes with no outgoing edges.
	Leaves []string

	// Bridges are nodes with both incoming and outgoing edges. This is a
	// deliberate heuristic, not articulation-point detection; downstream
	// output formats depend on this exact definition.
	Bridges []string
}

// Build constructs a SkillGraph from per-skill cross-references.
//
// The node set is every map key plus every referenced target; targets with
// no discovered skill become phantom nodes. Duplicate (source, target)
// pairs collapse to a single edge.
func Build(crossrefs map[string][]crossref.CrossRef) *SkillGraph {
	nodeSet := make(map[string]bool)
	edges := make(map[string]map[string]bool)

	for source, refs := range crossrefs {
		nodeSet[source] = true
		for _, r := range refs {
			nodeSet[r.Target] = true
		}
	}

	for name := range nodeSet {
		edges[name] = make(map[string]bool)
	}
	for source, refs := range crossrefs {
		for _, r := range refs {
			edges[source][r.Target] = true
		}
	}

	nodes := make([]string, 0, len(nodeSet))
	for name := range nodeSet {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)

	g := &SkillGraph{nodes: nodes, edges: edges}
	g.analyze()
	return g
}

// Nodes returns all node names in sorted order.
func (g *SkillGraph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Neighbors returns the sorted outgoing neighbors of a node.
func (g *SkillGraph) Neighbors(name string) []string {
	targets := make([]string, 0, len(g.edges[name]))
	for target := range g.edges[name] {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// EdgeCount returns the number of distinct directed edges.
func (g *SkillGraph) EdgeCount() int {
	count := 0
	for _, targets := range g.edges {
		count += len(targets)
	}
	return count
}

func (g *SkillGraph) analyze() {
	inDegree := make(map[string]int, len(g.nodes))
	outDegree := make(map[string]int, len(g.nodes))
	for source, targets := range g.edges {
		outDegree[source] = len(targets)
		for target := range targets {
			inDegree[target]++
		}
	}

	for _, name := range g.nodes {
		if inDegree[name] == 0 {
			g.Roots = append(g.Roots, name)
		}
		if outDegree[name] == 0 {
			g.Leaves = append(g.Leaves, name)
		}
		if inDegree[name] > 0 && outDegree[name] > 0 {
			g.Bridges = append(g.Bridges, name)
		}
	}

	g.Clusters = g.stronglyConnectedComponents()
}

// stronglyConnectedComponents runs Tarjan's algorithm iteratively and
// keeps only components with more than one member.
func (g *SkillGraph) stronglyConnectedComponents() [][]string {
	index := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	var stack []string
	var clusters [][]string
	next := 0

	type frame struct {
		node      string
		neighbors []string
		pos       int
	}

	for _, start := range g.nodes {
		if _, visited := index[start]; visited {
			continue
		}

		callStack := []frame{{node: start, neighbors: g.Neighbors(start)}}
		index[start] = next
		lowlink[start] = next
		next++
		stack = append(stack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]

			if top.pos < len(top.neighbors) {
				neighbor := top.neighbors[top.pos]
				top.pos++

				if _, visited := index[neighbor]; !visited {
					index[neighbor] = next
					lowlink[neighbor] = next
					next++
					stack = append(stack, neighbor)
					onStack[neighbor] = true
					callStack = append(callStack, frame{node: neighbor, neighbors: g.Neighbors(neighbor)})
				} else if onStack[neighbor] && index[neighbor] < lowlink[top.node] {
					lowlink[top.node] = index[neighbor]
				}
				continue
			}

			// All neighbors explored: pop the frame.
			node := top.node
			callStack = callStack[:len(callStack)-1]

			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1].node
				if lowlink[node] < lowlink[parent] {
					lowlink[parent] = lowlink[node]
				}
			}

			if lowlink[node] == index[node] {
				var component []string
				for {
					member := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[member] = false
					component = append(component, member)
					if member == node {
						break
					}
				}
				if len(component) > 1 {
					sort.Strings(component)
					clusters = append(clusters, component)
				}
			}
		}
	}

	return clusters
}

func (g *SkillGraph) isRoot(name string) bool   { return contains(g.Roots, name) }
func (g *SkillGraph) isLeaf(name string) bool   { return contains(g.Leaves, name) }
func (g *SkillGraph) isBridge(name string) bool { return contains(g.Bridges, name) }

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
