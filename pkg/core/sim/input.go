package sim

import (
	"context"
	"fmt"

	"github.com/matzehuels/boundlayout/pkg/core/region"
)

// ParticleSpec describes one graph node.
type ParticleSpec struct {
	ID       string  `json:"id" toml:"id"`
	Width    float64 `json:"width,omitempty" toml:"width"`
	Height   float64 `json:"height,omitempty" toml:"height"`
	Mass     float64 `json:"mass,omitempty" toml:"mass"`         // <= 0 selects Options.DefaultNodeMass
	Category string  `json:"category,omitempty" toml:"category"` // owning region id
}

// Edge connects two particles with a spring. Zero coefficient or length
// select the option defaults.
type Edge struct {
	Source      string  `json:"source" toml:"source"`
	Target      string  `json:"target" toml:"target"`
	Coefficient float64 `json:"coefficient,omitempty" toml:"coefficient"`
	Length      float64 `json:"length,omitempty" toml:"length"`
}

// RegionSource enumerates the regions of a layout.
type RegionSource interface {
	Regions(ctx context.Context) ([]region.Spec, error)
}

// ParticleSource enumerates the particles and edges of a layout.
type ParticleSource interface {
	Particles(ctx context.Context) ([]ParticleSpec, error)
	Edges(ctx context.Context) ([]Edge, error)
}

// Input is everything a run consumes. Wrap it in StaticSource to serve it
// through the source interfaces.
type Input struct {
	Regions   []region.Spec  `json:"regions"`
	Particles []ParticleSpec `json:"particles"`
	Edges     []Edge         `json:"edges"`
}

// LoadInput collects an Input from its sources.
func LoadInput(ctx context.Context, rs RegionSource, ps ParticleSource) (Input, error) {
	var in Input
	var err error
	if rs != nil {
		if in.Regions, err = rs.Regions(ctx); err != nil {
			return Input{}, fmt.Errorf("load regions: %w", err)
		}
	}
	if ps != nil {
		if in.Particles, err = ps.Particles(ctx); err != nil {
			return Input{}, fmt.Errorf("load particles: %w", err)
		}
		if in.Edges, err = ps.Edges(ctx); err != nil {
			return Input{}, fmt.Errorf("load edges: %w", err)
		}
	}
	return in, nil
}

// StaticSource serves a fixed Input through the source interfaces.
type StaticSource struct{ Input Input }

// Regions implements RegionSource.
func (s StaticSource) Regions(context.Context) ([]region.Spec, error) { return s.Input.Regions, nil }

// Particles implements ParticleSource.
func (s StaticSource) Particles(context.Context) ([]ParticleSpec, error) {
	return s.Input.Particles, nil
}

// Edges implements ParticleSource.
func (s StaticSource) Edges(context.Context) ([]Edge, error) { return s.Input.Edges, nil }
