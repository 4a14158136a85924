package sim

import (
	"slices"
	"time"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
)

// Result is the outcome of a layout run.
type Result struct {
	Positions   map[string]geom.Point `json:"positions"`
	Regions     []RegionStats         `json:"regions"`
	Iterations  int                   `json:"iterations"`
	Checkpoints int                   `json:"checkpoints"`
	Cancelled   bool                  `json:"cancelled,omitempty"`
	Duration    time.Duration         `json:"duration_ns"`
}

// RegionStats summarizes one user region after a run. The synthetic outer
// region is never reported.
type RegionStats struct {
	ID          string     `json:"id"`
	Shape       geom.Shape `json:"shape"`
	Box         geom.Box   `json:"box"`
	InCount     int        `json:"in_projections"`
	OutCount    int        `json:"out_projections"`
	InConstant  float64    `json:"in_constant,omitempty"`
	OutConstant float64    `json:"out_constant,omitempty"`
	Particles   int        `json:"particles"` // particle centers inside the region's shape
}

// Region returns the stats of the region with the given id.
func (r *Result) Region(id string) (RegionStats, bool) {
	i := slices.IndexFunc(r.Regions, func(s RegionStats) bool { return s.ID == id })
	if i < 0 {
		return RegionStats{}, false
	}
	return r.Regions[i], true
}

// IDs returns the particle ids in sorted order.
func (r *Result) IDs() []string {
	ids := make([]string, 0, len(r.Positions))
	for id := range r.Positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Engine) result(iterations int, cancelled bool) *Result {
	res := &Result{
		Positions:   make(map[string]geom.Point, len(e.items)),
		Iterations:  iterations,
		Checkpoints: e.checkpoints,
		Cancelled:   cancelled,
	}
	for _, it := range e.items {
		res.Positions[it.ID] = it.Pos
	}

	for _, r := range e.regions.All() {
		if r.IsOuter() {
			continue
		}
		stats := RegionStats{
			ID:       r.ID,
			Shape:    r.Shape,
			Box:      r.Box,
			InCount:  r.InCount,
			OutCount: r.OutCount,
		}
		if w, ok := e.walls[r.ID]; ok {
			stats.InConstant, stats.OutConstant = w.In, w.Out
		}
		for _, it := range e.items {
			if insideShape(r.Shape, r.Box, it.Pos) {
				stats.Particles++
			}
		}
		res.Regions = append(res.Regions, stats)
	}
	return res
}

func insideShape(shape geom.Shape, box geom.Box, p geom.Point) bool {
	if shape.IsElliptical() {
		return geom.EllipseValue(box, p) < 1
	}
	return box.ContainsPoint(p)
}
