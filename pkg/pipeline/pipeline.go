// Package pipeline runs boundlayout scenes end to end.
//
// This package implements the load → layout → render → store pipeline that
// both the CLI and the HTTP API use, so caching and persistence behave the
// same on every entry point.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read a TOML or JSON scene file ([LoadScene])
//  2. Layout: run the boundary-constrained engine, cached by scene content
//  3. Render: produce JSON, DOT or SVG artifacts
//  4. Store: hand the positions to every configured [store.PositionSink]
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	runner.Sinks = []store.PositionSink{fileStore}
//	s, err := pipeline.LoadScene(ctx, "office.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, s, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. Engine options live in the scene's
// [layout] table; callers override them there before calling Execute.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // bypass the layout cache
	NoStore bool     `json:"no_store,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger           `json:"-"`
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the scene that was laid out.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene input and options.
	SceneHash string

	// Layout is the engine result.
	Layout *sim.Result

	// Export is the persisted form of Layout, with its run id.
	Export *scene.Export

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Particles  int
	Regions    int
	Edges      int
	LayoutTime time.Duration
	RenderTime time.Duration
	StoreTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether every cacheable artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: json, svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks formats and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the engine options.
func LayoutKeyOpts(o sim.Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NumIterations:         o.NumIterations,
		SpeedLimit:            o.SpeedLimit,
		GravitationalConstant: o.GravitationalConstant,
		VariableWallStrength:  o.VariableWallStrength,
		WallScaleFactor:       o.WallScaleFactor,
		AvoidOverlap:          o.ShouldAvoidOverlap(),
		NodeMass:              o.DefaultNodeMass,
		SpringCoefficient:     o.DefaultSpringCoefficient,
		SpringLength:          o.DefaultSpringLength,
		OuterBoundsThickness:  o.OuterBoundsThickness,
		CheckpointDivisor:     o.CheckpointDivisor,
		DragCoefficient:       o.DragCoefficient,
		RepulsionConstant:     o.RepulsionConstant,
		Theta:                 o.Theta,
		ScaleMod:              o.ScaleMod,
		Integrator:            o.Integrator,
	}
}
