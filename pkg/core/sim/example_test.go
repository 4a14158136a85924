package sim_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
)

func ExampleEngine_Run() {
	eng, err := sim.NewEngine(sim.Options{NumIterations: 150})
	if err != nil {
		panic(err)
	}
	res, err := eng.Run(context.Background(), sim.Input{
		Regions: []region.Spec{
			{ID: "left", Shape: "Rectangle", X: 0, Y: 0, Width: 100, Height: 100},
			{ID: "right", Shape: "Ellipse", X: 200, Y: 0, Width: 100, Height: 100},
		},
		Particles: []sim.ParticleSpec{
			{ID: "a", Width: 10, Height: 10, Category: "left"},
			{ID: "b", Width: 10, Height: 10, Category: "right"},
		},
		Edges: []sim.Edge{{Source: "a", Target: "b"}},
	})
	if err != nil {
		panic(err)
	}
	for _, r := range res.Regions {
		fmt.Println(r.ID, r.Particles)
	}
	// Output:
	// left 1
	// right 1
}
