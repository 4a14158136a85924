package scene

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
)

func sampleScene() *Scene {
	return &Scene{
		Regions: []region.Spec{{ID: "A", Width: 100, Height: 100}},
		Nodes:   []sim.ParticleSpec{{ID: "a", Width: 10, Height: 10}, {ID: "b"}, {ID: "ghost"}},
		Edges:   []sim.Edge{{Source: "a", Target: "b"}, {Source: "a", Target: "ghost"}},
	}
}

func TestToDOT(t *testing.T) {
	s := sampleScene()
	res := sampleResult()
	dot := ToDOT(s, res)

	assert.True(t, strings.HasPrefix(dot, "graph Layout {"))
	assert.Contains(t, dot, `"region:A"`)
	assert.Contains(t, dot, `pos="1.00,-2.00!"`)
	assert.Contains(t, dot, `"a" -- "b";`)
	assert.NotContains(t, dot, `"ghost"`, "nodes without a position are dropped")
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), sampleScene(), sampleResult())
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
