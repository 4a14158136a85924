package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
)

// Export is the persisted form of a finished run.
type Export struct {
	RunID       string                `json:"run_id" bson:"_id"`
	Scene       string                `json:"scene,omitempty" bson:"scene,omitempty"`
	CreatedAt   time.Time             `json:"created_at" bson:"created_at"`
	Positions   map[string]geom.Point `json:"positions" bson:"positions"`
	Regions     []sim.RegionStats     `json:"regions,omitempty" bson:"regions,omitempty"`
	Iterations  int                   `json:"iterations" bson:"iterations"`
	Checkpoints int                   `json:"checkpoints" bson:"checkpoints"`
	Cancelled   bool                  `json:"cancelled,omitempty" bson:"cancelled,omitempty"`
	DurationMS  int64                 `json:"duration_ms" bson:"duration_ms"`
}

// NewExport wraps res under a fresh run id.
func NewExport(sceneName string, res *sim.Result) *Export {
	return &Export{
		RunID:       uuid.NewString(),
		Scene:       sceneName,
		CreatedAt:   time.Now().UTC(),
		Positions:   res.Positions,
		Regions:     res.Regions,
		Iterations:  res.Iterations,
		Checkpoints: res.Checkpoints,
		Cancelled:   res.Cancelled,
		DurationMS:  res.Duration.Milliseconds(),
	}
}

// Result converts the export back into an engine result.
func (e *Export) Result() *sim.Result {
	return &sim.Result{
		Positions:   e.Positions,
		Regions:     e.Regions,
		Iterations:  e.Iterations,
		Checkpoints: e.Checkpoints,
		Cancelled:   e.Cancelled,
		Duration:    time.Duration(e.DurationMS) * time.Millisecond,
	}
}

// WriteExport encodes e as indented JSON.
func WriteExport(w io.Writer, e *Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadExport decodes an export written by [WriteExport].
func ReadExport(r io.Reader) (*Export, error) {
	var e Export
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &e, nil
}

// ExportFile writes e to a JSON file at path.
func ExportFile(e *Export, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteExport(f, e)
}
