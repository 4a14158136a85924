package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/observability"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// PartitionResult describes the free space of one region: the parts not
// covered by any region it intersects.
type PartitionResult struct {
	Region       string       `json:"region"`
	Box          geom.Box     `json:"box"`
	Intersecting []string     `json:"intersecting"`
	Leaves       []geom.Box   `json:"leaves"`
	InitPoints   []geom.Point `json:"init_points"`
	FreeArea     float64      `json:"free_area"`
	Depth        int          `json:"depth"` // deepest leaf
	Nodes        int          `json:"nodes"`
	DOT          string       `json:"dot,omitempty"`
}

// Partition decomposes the free space of one region of s, with caching.
func (r *Runner) Partition(ctx context.Context, s *scene.Scene, regionID string) (*PartitionResult, bool, error) {
	// The outer region's extent depends on the thickness option.
	geometry := fmt.Sprintf("%s:%g", SceneHash(s), s.Layout.OuterBoundsThickness)
	key := r.Keyer.PartitionKey(cache.Hash([]byte(geometry)), regionID)
	hooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var cached PartitionResult
		if err := json.Unmarshal(data, &cached); err == nil {
			hooks.OnCacheHit(ctx, "partition")
			return &cached, true, nil
		}
	}
	hooks.OnCacheMiss(ctx, "partition")

	res, err := ComputePartition(s, regionID)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(res); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLPartition) == nil {
			hooks.OnCacheSet(ctx, "partition", len(data))
		}
	}
	return res, false, nil
}

// ComputePartition sets up the regions of s the way a layout run does and
// decomposes regionID.
func ComputePartition(s *scene.Scene, regionID string) (*PartitionResult, error) {
	opts := s.Layout
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	set, err := region.Build(s.Regions)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "scene has no regions")
	}
	set.AddOuter(opts.OuterBoundsThickness)
	set.Setup()

	r, ok := set.Get(regionID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "region %q not found", regionID)
	}
	tree := set.Partition(r)
	depth := 0
	for _, id := range tree.LeafIDs() {
		depth = max(depth, tree.Depth(id))
	}
	return &PartitionResult{
		Region:       r.ID,
		Box:          r.Box,
		Intersecting: r.Intersecting,
		Leaves:       tree.Leaves(),
		InitPoints:   r.InitPoints,
		FreeArea:     tree.FreeArea(),
		Depth:        depth,
		Nodes:        tree.Len(),
		DOT:          tree.ToDOT(),
	}, nil
}
