package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/observability"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// LayoutOutput is the result of the layout stage.
type LayoutOutput struct {
	Result    *sim.Result
	SceneHash string
	Hit       bool
}

// LayoutWithCacheInfo lays out s, serving and filling the cache. Cancelled
// runs are never cached.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (*LayoutOutput, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	engineOpts := s.Layout
	engineOpts.Logger = opts.Logger
	engineOpts.Progress = opts.Progress
	eng, err := sim.NewEngine(engineOpts)
	if err != nil {
		return nil, err
	}

	sceneHash := SceneHash(s)
	key := r.Keyer.LayoutKey(sceneHash, LayoutKeyOpts(eng.Options()))
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached sim.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return &LayoutOutput{Result: &cached, SceneHash: sceneHash, Hit: true}, nil
			}
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	in, err := sim.LoadInput(ctx, s.Source(), s.Source())
	if err != nil {
		return nil, err
	}
	res, err := eng.Run(ctx, in)
	if err != nil {
		return nil, err
	}

	if !res.Cancelled {
		if data, err := json.Marshal(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
				hooks.OnCacheSet(ctx, "layout", len(data))
			} else {
				r.Logger.Warn("cache write failed", "key", key, "error", err)
			}
		}
	}
	return &LayoutOutput{Result: res, SceneHash: sceneHash}, nil
}

// Layout is a convenience wrapper that discards the cache information.
func (r *Runner) Layout(ctx context.Context, s *scene.Scene, opts Options) (*sim.Result, error) {
	out, err := r.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}
