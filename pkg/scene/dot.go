package scene

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
)

// regionPalette cycles fill colors across regions.
var regionPalette = []string{"#e3f2fd", "#fce4ec", "#e8f5e9", "#fff3e0", "#ede7f6", "#e0f7fa"}

// ToDOT returns a Graphviz DOT representation of a finished layout.
//
// Every element is pinned (pos="x,y!") so the neato engine reproduces the
// computed layout instead of running its own. The y axis is flipped since
// Graphviz grows upward.
//
// Node representation:
//   - Regions: filled boxes or ellipses named by an external label
//   - Particles: small white boxes at their final position
//
// Edges are drawn straight between particle centers.
func ToDOT(s *Scene, res *sim.Result) string {
	var buf bytes.Buffer
	buf.WriteString("graph Layout {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=10, fixedsize=true, style=filled];\n\n")

	for i, spec := range s.Regions {
		stats, ok := res.Region(spec.ID)
		if !ok {
			continue
		}
		shape := "box"
		if stats.Shape.IsElliptical() {
			shape = "ellipse"
		}
		c := stats.Box.Center()
		fmt.Fprintf(&buf, "  %q [label=\"\", xlabel=%q, shape=%s, pos=%q, width=%.4f, height=%.4f, fillcolor=%q, color=\"#90a4ae\"];\n",
			"region:"+spec.ID, spec.ID, shape, pinned(c), inches(stats.Box.W), inches(stats.Box.H),
			regionPalette[i%len(regionPalette)])
	}
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		p, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		w, h := n.Width, n.Height
		if w <= 0 {
			w = 4
		}
		if h <= 0 {
			h = 4
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, pos=%q, width=%.4f, height=%.4f, fillcolor=white];\n",
			n.ID, n.ID, pinned(p), inches(w), inches(h))
	}
	buf.WriteString("\n")

	for _, e := range s.Edges {
		_, okA := res.Positions[e.Source]
		_, okB := res.Positions[e.Target]
		if okA && okB && e.Source != e.Target {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a finished layout as SVG with the neato engine.
func RenderSVG(ctx context.Context, s *Scene, res *sim.Result) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(s, res)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.SetLayout(graphviz.NEATO).Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func pinned(p geom.Point) string {
	return fmt.Sprintf("%.2f,%.2f!", p.X, -p.Y)
}

func inches(points float64) float64 { return points / 72 }
