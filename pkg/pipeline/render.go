package pipeline

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// RenderWithCacheInfo produces the requested artifacts for e. SVG and DOT
// are cached by layout content; JSON carries the run id and is always
// rendered fresh. The hit flag is true when every cacheable format came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, e *scene.Export, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	positions, err := json.Marshal(e.Positions)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(positions)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		if format == FormatJSON {
			var buf bytes.Buffer
			if err := scene.WriteExport(&buf, e); err != nil {
				return nil, false, err
			}
			artifacts[format] = buf.Bytes()
			continue
		}

		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
			continue
		}
		allHit = false

		data, err := RenderFormat(ctx, s, e, format)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}
	return artifacts, allHit, nil
}

// RenderFormat renders a single artifact without caching.
func RenderFormat(ctx context.Context, s *scene.Scene, e *scene.Export, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return scene.RenderSVG(ctx, s, e.Result())
	case FormatDOT:
		return []byte(scene.ToDOT(s, e.Result())), nil
	}
	var buf bytes.Buffer
	if err := scene.WriteExport(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
