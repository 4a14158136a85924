package partition

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the split hierarchy.
//
// Node representation:
//   - Free leaves: green rounded boxes
//   - Covered nodes: grey boxes
//   - Split nodes: plain boxes
//
// Edges are labelled with the side of the parent the child occupies.
func (t *Tree) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Partition {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none, fontsize=10];\n\n")

	for id, n := range t.nodes {
		label := fmt.Sprintf("%.4g,%.4g\n%.4g×%.4g", n.Box.X, n.Box.Y, n.Box.W, n.Box.H)
		switch {
		case n.Covered:
			fmt.Fprintf(&buf, "  n%d [label=%q, fillcolor=\"#dddddd\"];\n", id, label)
		case !n.HasChildren():
			fmt.Fprintf(&buf, "  n%d [label=%q, style=\"filled,rounded\", fillcolor=\"#c8f0c8\"];\n", id, label)
		default:
			fmt.Fprintf(&buf, "  n%d [label=%q];\n", id, label)
		}
	}
	buf.WriteString("\n")
	for id, n := range t.nodes {
		for side, c := range n.Children {
			if c != None {
				fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", id, c, sideNames[side])
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the split hierarchy as an SVG image via ToDOT.
func (t *Tree) RenderSVG(ctx context.Context) ([]byte, error) {
	return RenderDOT(ctx, t.ToDOT())
}

// RenderDOT renders DOT source produced by ToDOT as SVG.
//
// Errors are returned if Graphviz cannot initialize, the DOT is malformed,
// or rendering fails.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
