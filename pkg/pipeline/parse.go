package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/observability"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

// LoadScene reads a scene file and reports the load to the pipeline hooks.
func LoadScene(ctx context.Context, path string) (*scene.Scene, error) {
	start := time.Now()
	s, err := scene.ReadFile(path)
	var regions, particles int
	if s != nil {
		regions, particles = len(s.Regions), len(s.Nodes)
	}
	observability.Pipeline().OnSceneLoad(ctx, path, regions, particles, time.Since(start), err)
	return s, err
}

// SceneHash hashes the geometry and topology of s. Engine options are keyed
// separately through [LayoutKeyOpts].
func SceneHash(s *scene.Scene) string {
	data, _ := json.Marshal(s.Input())
	return cache.Hash(data)
}
