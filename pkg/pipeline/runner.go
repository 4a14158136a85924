package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/observability"
	"github.com/matzehuels/boundlayout/pkg/scene"
	"github.com/matzehuels/boundlayout/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the sinks and the logger.
// Multiple goroutines can safely use the same Runner with different scenes.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Sinks  []store.PositionSink
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render → store pipeline on s.
// A cancelled context yields a partial layout that is neither cached nor
// stored; artifacts are still rendered from it.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Scene: s,
		Stats: Stats{
			Particles: len(s.Nodes),
			Regions:   len(s.Regions),
			Edges:     len(s.Edges),
		},
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	out, err := r.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = out.Result
	result.SceneHash = out.SceneHash
	result.CacheInfo.LayoutHit = out.Hit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Export = scene.NewExport(s.Name, out.Result)

	r.Logger.Info("computed layout",
		"particles", len(out.Result.Positions),
		"iterations", out.Result.Iterations,
		"cached", out.Hit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, result.Export, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	// Stage 3: Store
	if opts.NoStore || out.Result.Cancelled {
		return result, nil
	}
	storeStart := time.Now()
	if err := r.Store(ctx, result.Export); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	result.Stats.StoreTime = time.Since(storeStart)
	return result, nil
}

// Store hands e to every sink in order, stopping at the first failure.
func (r *Runner) Store(ctx context.Context, e *scene.Export) error {
	hooks := observability.Pipeline()
	for _, sink := range r.Sinks {
		start := time.Now()
		err := cache.RetryWithBackoff(ctx, func() error { return sink.Store(ctx, e) })
		hooks.OnPositionsStored(ctx, sink.Name(), len(e.Positions), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("%s: %w", sink.Name(), err)
		}
		r.Logger.Debug("stored positions", "sink", sink.Name(), "run_id", e.RunID)
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
