package sim

import (
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boundlayout/pkg/core/force"
	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultNumIterations         = 100
	DefaultSpeedLimit            = 1.0
	DefaultGravitationalConstant = 10.0
	DefaultWallScaleFactor       = force.DefaultScaleFactor
	DefaultNodeMass              = 3.0
	DefaultSpringCoefficient     = 1e-4
	DefaultSpringLength          = 50.0
	DefaultOuterBoundsThickness  = 1.5
	DefaultCheckpointDivisor     = 25
	DefaultDragCoefficient       = force.DefaultDragCoefficient
	DefaultRepulsionConstant     = force.DefaultRepulsionConstant
	DefaultTheta                 = force.DefaultTheta
	DefaultScaleMod              = region.DefaultScaleMod
	DefaultIntegrator            = force.IntegratorEuler
	DefaultAvoidOverlap          = true
	PhaseASpeedLimit             = 2.0
	InitialTimestep              = 1000.0
	TimestepFloor                = 50.0
	initJitterFraction           = 0.025
)

// =============================================================================
// Options
// =============================================================================

// Options configures a layout run. Zero values select defaults.
type Options struct {
	NumIterations         int     `json:"num_iterations,omitempty" toml:"num_iterations"`
	SpeedLimit            float64 `json:"speed_limit,omitempty" toml:"speed_limit"`
	GravitationalConstant float64 `json:"gravitational_constant,omitempty" toml:"gravitational_constant"` // wall strength; sign is ignored
	VariableWallStrength  bool    `json:"variable_wall_strength,omitempty" toml:"variable_wall_strength"`
	WallScaleFactor       float64 `json:"wall_scale_factor,omitempty" toml:"wall_scale_factor"`
	AvoidOverlap          *bool   `json:"avoid_overlap,omitempty" toml:"avoid_overlap"` // nil means true

	DefaultNodeMass          float64 `json:"default_node_mass,omitempty" toml:"default_node_mass"`
	DefaultSpringCoefficient float64 `json:"default_spring_coefficient,omitempty" toml:"default_spring_coefficient"`
	DefaultSpringLength      float64 `json:"default_spring_length,omitempty" toml:"default_spring_length"`
	OuterBoundsThickness     float64 `json:"outer_bounds_thickness,omitempty" toml:"outer_bounds_thickness"`
	CheckpointDivisor        int     `json:"checkpoint_divisor,omitempty" toml:"checkpoint_divisor"`

	DragCoefficient   float64 `json:"drag_coefficient,omitempty" toml:"drag_coefficient"`
	RepulsionConstant float64 `json:"repulsion_constant,omitempty" toml:"repulsion_constant"`
	Theta             float64 `json:"theta,omitempty" toml:"theta"`
	ScaleMod          int     `json:"scale_mod,omitempty" toml:"scale_mod"`
	Integrator        string  `json:"integrator,omitempty" toml:"integrator"`

	// Runtime options (not serialized)
	Logger   *log.Logger           `json:"-" toml:"-"`
	Progress func(done, total int) `json:"-" toml:"-"`
	Rand     *rand.Rand            `json:"-" toml:"-"` // nil uses the unseeded global source

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Bool returns a pointer to v, for optional boolean options.
func Bool(v bool) *bool { return &v }

// ShouldAvoidOverlap reports whether repulsion measures gaps between item
// extents.
func (o *Options) ShouldAvoidOverlap() bool {
	if o.AvoidOverlap == nil {
		return DefaultAvoidOverlap
	}
	return *o.AvoidOverlap
}

// ValidateAndSetDefaults checks option ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.validate(); err != nil {
		return err
	}
	o.setDefaults()
	o.validated = true
	return nil
}

func (o *Options) validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}
	switch {
	case o.NumIterations < 0:
		return invalid("num_iterations must be positive, got %d", o.NumIterations)
	case o.CheckpointDivisor < 0:
		return invalid("checkpoint_divisor must be positive, got %d", o.CheckpointDivisor)
	case o.ScaleMod < 0:
		return invalid("scale_mod must be at least 1, got %d", o.ScaleMod)
	case o.SpeedLimit < 0:
		return invalid("speed_limit must not be negative, got %v", o.SpeedLimit)
	case o.WallScaleFactor < 0:
		// A negative factor would turn a rescaled wall into an attractor.
		return invalid("wall_scale_factor must not be negative, got %v", o.WallScaleFactor)
	case o.OuterBoundsThickness != 0 && o.OuterBoundsThickness < 1:
		return invalid("outer_bounds_thickness must be at least 1, got %v", o.OuterBoundsThickness)
	case o.DefaultNodeMass < 0:
		return invalid("default_node_mass must be positive, got %v", o.DefaultNodeMass)
	case o.DefaultSpringLength < 0:
		return invalid("default_spring_length must not be negative, got %v", o.DefaultSpringLength)
	case o.DragCoefficient < 0:
		return invalid("drag_coefficient must not be negative, got %v", o.DragCoefficient)
	case o.Theta < 0:
		return invalid("theta must not be negative, got %v", o.Theta)
	}
	for name, v := range map[string]float64{
		"speed_limit":                o.SpeedLimit,
		"gravitational_constant":     o.GravitationalConstant,
		"wall_scale_factor":          o.WallScaleFactor,
		"default_node_mass":          o.DefaultNodeMass,
		"default_spring_coefficient": o.DefaultSpringCoefficient,
		"default_spring_length":      o.DefaultSpringLength,
		"outer_bounds_thickness":     o.OuterBoundsThickness,
		"drag_coefficient":           o.DragCoefficient,
		"repulsion_constant":         o.RepulsionConstant,
		"theta":                      o.Theta,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("%s must be finite", name)
		}
	}
	if _, err := force.ParseIntegrator(o.Integrator); err != nil {
		return err
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.NumIterations == 0 {
		o.NumIterations = DefaultNumIterations
	}
	if o.SpeedLimit == 0 {
		o.SpeedLimit = DefaultSpeedLimit
	}
	if o.GravitationalConstant == 0 {
		o.GravitationalConstant = DefaultGravitationalConstant
	}
	o.GravitationalConstant = math.Abs(o.GravitationalConstant)
	if o.WallScaleFactor == 0 {
		o.WallScaleFactor = DefaultWallScaleFactor
	}
	if o.AvoidOverlap == nil {
		o.AvoidOverlap = Bool(DefaultAvoidOverlap)
	}
	if o.DefaultNodeMass == 0 {
		o.DefaultNodeMass = DefaultNodeMass
	}
	if o.DefaultSpringCoefficient == 0 {
		o.DefaultSpringCoefficient = DefaultSpringCoefficient
	}
	if o.DefaultSpringLength == 0 {
		o.DefaultSpringLength = DefaultSpringLength
	}
	if o.OuterBoundsThickness == 0 {
		o.OuterBoundsThickness = DefaultOuterBoundsThickness
	}
	if o.CheckpointDivisor == 0 {
		o.CheckpointDivisor = DefaultCheckpointDivisor
	}
	if o.DragCoefficient == 0 {
		o.DragCoefficient = DefaultDragCoefficient
	}
	if o.RepulsionConstant == 0 {
		o.RepulsionConstant = DefaultRepulsionConstant
	}
	if o.Theta == 0 {
		o.Theta = DefaultTheta
	}
	if o.ScaleMod == 0 {
		o.ScaleMod = DefaultScaleMod
	}
	if o.Integrator == "" {
		o.Integrator = DefaultIntegrator
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// CheckpointInterval returns the number of iterations between scheduled
// containment corrections.
func (o *Options) CheckpointInterval() int {
	div := o.CheckpointDivisor
	if div <= 0 {
		div = DefaultCheckpointDivisor
	}
	return o.NumIterations/div + 1
}
