package sim

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boundlayout/pkg/core/force"
	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/observability"
)

// Phase names reported to logs and hooks.
const (
	PhaseSprings   = "springs"
	PhaseWalls     = "walls"
	PhaseRepulsion = "repulsion"
)

// Engine runs one layout at a time. It is not safe for concurrent use; create
// one Engine per run or per goroutine.
type Engine struct {
	opts   Options
	logger *log.Logger

	regions *region.Set
	walls   map[string]*force.WallForce
	sim     *force.Simulator
	springs *force.Springs
	items   []*force.Item
	byID    map[string]*force.Item

	checkpoints int
}

// NewEngine validates opts and returns an engine.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, logger: opts.Logger}, nil
}

// Options returns the validated options of the engine.
func (e *Engine) Options() Options { return e.opts }

// Run lays out in. Configuration and geometry errors abort before the first
// step. Cancelling ctx ends the run early with Result.Cancelled set and a
// nil error.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	if err := e.setup(in); err != nil {
		return nil, err
	}

	n := e.opts.NumIterations
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(e.items), e.userRegionCount(), n)
	e.logger.Debug("layout started",
		"particles", len(e.items),
		"regions", e.userRegionCount(),
		"springs", len(e.springs.Springs),
		"iterations", n,
		"integrator", e.sim.Integrator.Name())

	phases := []struct {
		name       string
		start, end int
		enter      func()
	}{
		{PhaseSprings, 0, n / 3, func() { e.sim.SpeedLimit = PhaseASpeedLimit }},
		{PhaseWalls, n / 3, 2 * n / 3, e.enableWalls},
		{PhaseRepulsion, 2 * n / 3, n, e.enableRepulsion},
	}

	interval := e.opts.CheckpointInterval()
	timestep := InitialTimestep
	done := 0
	cancelled := false

run:
	for pi, ph := range phases {
		if pi > 0 {
			e.correct(ctx, ph.start)
		}
		ph.enter()
		hooks.OnPhase(ctx, ph.name, ph.start)
		e.logger.Debug("phase", "name", ph.name, "iteration", ph.start, "forces", len(e.sim.Forces))

		for i := ph.start; i < ph.end; i++ {
			if ctx.Err() != nil {
				cancelled = true
				break run
			}
			timestep *= 1 - float64(i)/float64(n)
			if i%interval == 0 {
				e.correct(ctx, i)
			}
			e.sim.Step(timestep + TimestepFloor)
			done++
			if e.opts.Progress != nil {
				e.opts.Progress(done, n)
			}
		}
	}

	if cancelled {
		e.logger.Warn("layout cancelled", "iterations", done, "total", n)
	} else {
		e.correct(ctx, n)
	}

	res := e.result(done, cancelled)
	res.Duration = time.Since(start)
	hooks.OnLayoutComplete(ctx, done, res.Duration, cancelled)
	e.logger.Debug("layout finished",
		"iterations", done,
		"checkpoints", e.checkpoints,
		"cancelled", cancelled,
		"duration", res.Duration)
	return res, nil
}

// =============================================================================
// Setup
// =============================================================================

func (e *Engine) setup(in Input) error {
	regions, err := region.Build(in.Regions)
	if err != nil {
		return err
	}
	if regions.Len() > 0 {
		regions.AddOuter(e.opts.OuterBoundsThickness)
		regions.SetScaleMod(e.opts.ScaleMod)
		regions.Setup()
	}

	integrator, err := force.ParseIntegrator(e.opts.Integrator)
	if err != nil {
		return err
	}

	e.regions = regions
	e.walls = make(map[string]*force.WallForce)
	e.sim = force.NewSimulator(integrator, PhaseASpeedLimit)
	e.springs = &force.Springs{Rand: e.opts.Rand}
	e.items = make([]*force.Item, 0, len(in.Particles))
	e.byID = make(map[string]*force.Item, len(in.Particles))
	e.checkpoints = 0

	e.sim.AddForce(e.springs)
	e.sim.AddForce(&force.Drag{Coefficient: e.opts.DragCoefficient})

	for _, p := range in.Particles {
		it, err := e.newItem(p)
		if err != nil {
			return err
		}
		e.items = append(e.items, it)
		e.byID[it.ID] = it
		e.sim.AddItem(it)
	}

	for _, edge := range in.Edges {
		a, okA := e.byID[edge.Source]
		b, okB := e.byID[edge.Target]
		if !okA || !okB {
			e.logger.Debug("skipping edge with unknown endpoint", "source", edge.Source, "target", edge.Target)
			continue
		}
		if a == b {
			continue
		}
		coeff := edge.Coefficient
		if coeff <= 0 {
			coeff = e.opts.DefaultSpringCoefficient
		}
		length := edge.Length
		if length <= 0 {
			length = e.opts.DefaultSpringLength
		}
		e.springs.Add(a, b, coeff, length)
	}
	return nil
}

func (e *Engine) newItem(p ParticleSpec) (*force.Item, error) {
	if err := errors.ValidateID("particle", p.ID); err != nil {
		return nil, err
	}
	if _, dup := e.byID[p.ID]; dup {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate particle id %q", p.ID)
	}
	if p.Width < 0 || p.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "particle %q has negative size %vx%v", p.ID, p.Width, p.Height)
	}

	mass := p.Mass
	if mass <= 0 {
		mass = e.opts.DefaultNodeMass
	}
	it := &force.Item{
		ID:       p.ID,
		Category: p.Category,
		Mass:     mass,
		Width:    p.Width,
		Height:   p.Height,
	}

	if e.regions.Len() == 0 {
		spread := e.opts.DefaultSpringLength / 2
		it.Teleport(geom.Point{X: e.jitter(spread), Y: e.jitter(spread)})
		return it, nil
	}

	owner, _ := e.regions.Owner(p.Category)
	it.Category = owner.ID
	e.place(it, owner)
	return it, nil
}

// place seeds it at a random init point of r, jittered by a small fraction
// of the region's smaller side.
func (e *Engine) place(it *force.Item, r *region.Region) {
	spread := initJitterFraction * min(r.Box.W, r.Box.H)
	p := r.RandomInit(e.opts.Rand)
	it.Teleport(geom.Point{X: p.X + e.jitter(spread), Y: p.Y + e.jitter(spread)})
}

// jitter returns a uniform value in [-spread, spread).
func (e *Engine) jitter(spread float64) float64 {
	var u float64
	if e.opts.Rand != nil {
		u = e.opts.Rand.Float64()
	} else {
		u = rand.Float64()
	}
	return (2*u - 1) * spread
}

// =============================================================================
// Phase transitions
// =============================================================================

func (e *Engine) enableWalls() {
	e.sim.SpeedLimit = e.opts.SpeedLimit
	for _, r := range e.regions.All() {
		w := force.NewWallForce(r.ID, r.Shape, r.Box,
			e.opts.GravitationalConstant, e.opts.VariableWallStrength, e.opts.WallScaleFactor)
		w.ContainAll = r.IsOuter()
		e.walls[r.ID] = w
		e.sim.AddForce(w)
	}
}

func (e *Engine) enableRepulsion() {
	e.sim.AddForce(&force.Repulsion{
		Constant:     e.opts.RepulsionConstant,
		Theta:        e.opts.Theta,
		AvoidOverlap: e.opts.ShouldAvoidOverlap(),
	})
}

func (e *Engine) userRegionCount() int {
	n := e.regions.Len()
	if _, ok := e.regions.Outer(); ok {
		n--
	}
	return n
}
