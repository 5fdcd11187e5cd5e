// Package render draws the repository-reference graph of a closure
// resolution as Graphviz DOT or SVG.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/varun-a1/odlparent/pkg/closure"
	"github.com/varun-a1/odlparent/pkg/feature"
)

type edge struct {
	from, to string
}

// Graph accumulates descriptor nodes and repository-reference edges during
// a closure resolution. Build one with NewGraph, pass Hooks() to the
// resolver, and render after the traversal.
type Graph struct {
	nodes     []string
	nodeSeen  map[string]bool
	edges     []edge
	edgeSeen  map[edge]bool
	coordName map[string]string // coordinate -> descriptor name
}

// NewGraph creates an empty graph seeded with the root descriptors.
func NewGraph(roots []*feature.Features) *Graph {
	g := &Graph{
		nodeSeen:  make(map[string]bool),
		edgeSeen:  make(map[edge]bool),
		coordName: make(map[string]string),
	}
	for _, f := range roots {
		g.addNode(f.Name)
	}
	return g
}

// Hooks returns traversal hooks that record every discovered descriptor and
// every reference to an already-known one.
func (g *Graph) Hooks() closure.Hooks {
	return closure.Hooks{
		Discovered: func(parent *feature.Features, coordinate string, loaded *feature.Features) {
			g.coordName[coordinate] = loaded.Name
			g.addNode(loaded.Name)
			g.addEdge(parent.Name, loaded.Name)
		},
		Skipped: func(parent *feature.Features, coordinate string) {
			// Back-references to descriptors discovered earlier in the
			// same traversal still show up as edges.
			if name, ok := g.coordName[coordinate]; ok {
				g.addEdge(parent.Name, name)
			}
		},
	}
}

func (g *Graph) addNode(name string) {
	if g.nodeSeen[name] {
		return
	}
	g.nodeSeen[name] = true
	g.nodes = append(g.nodes, name)
}

func (g *Graph) addEdge(from, to string) {
	e := edge{from: from, to: to}
	if g.edgeSeen[e] {
		return
	}
	g.edgeSeen[e] = true
	g.edges = append(g.edges, e)
}

// NodeCount returns the number of descriptor nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of repository-reference edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ToDOT returns a Graphviz DOT representation of the descriptor graph.
// Nodes are descriptor names; edges follow repository references.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph features {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "  %q;\n", n)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the descriptor graph as an SVG image via Graphviz.
func (g *Graph) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := g.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
