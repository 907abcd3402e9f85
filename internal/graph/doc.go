// Package graph builds and analyzes the skill reference graph.
//
// The graph is directed: an edge a -> b means skill a's body references
// skill b. Referenced names without a discovered skill still become nodes
// ("phantoms") so dangling targets show up in every export.
//
// Analysis computes clusters (strongly connected components of size two or
// more), roots (no incoming edges), leaves (no outgoing edges), and a
// bridge heuristic: any node with both incoming and outgoing edges. The
// heuristic is intentionally crude and is part of the output contract;
// it is not articulation-point detection.
//
// Exports: plain text adjacency, Graphviz DOT, JSON, and Mermaid.
package graph
