package region

import (
	"github.com/matzehuels/boundlayout/pkg/errors"
)

// Spec describes a region as delivered by a region source.
//
// Geometry is taken from X, Y, Width and Height unless Args is set, in which
// case the annotation-style string fields "x", "y", "width" and "height"
// are parsed instead. Width and height are divided by Zoom; a zero or
// negative zoom is treated as 1.
type Spec struct {
	ID     string            `json:"id" toml:"id"`
	Shape  string            `json:"shape,omitempty" toml:"shape"`
	X      float64           `json:"x" toml:"x"`
	Y      float64           `json:"y" toml:"y"`
	Width  float64           `json:"width" toml:"width"`
	Height float64           `json:"height" toml:"height"`
	Zoom   float64           `json:"zoom,omitempty" toml:"zoom"`
	Args   map[string]string `json:"args,omitempty" toml:"args"`
}

// FromArgs builds a Spec from annotation arguments. Missing or non-numeric
// geometry fields are configuration errors; "zoom" is optional.
func FromArgs(id, shape string, args map[string]string) (Spec, error) {
	s := Spec{ID: id, Shape: shape}
	fields := []struct {
		key string
		dst *float64
	}{
		{"x", &s.X},
		{"y", &s.Y},
		{"width", &s.Width},
		{"height", &s.Height},
	}
	for _, f := range fields {
		v, err := errors.ParseNumber(args, f.key)
		if err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "region %q", id)
		}
		*f.dst = v
	}
	if _, ok := args["zoom"]; ok {
		z, err := errors.ParseNumber(args, "zoom")
		if err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "region %q", id)
		}
		s.Zoom = z
	}
	return s, nil
}

// resolve applies Args and Zoom, returning plain layout-space geometry.
func (s Spec) resolve() (Spec, error) {
	if s.Args != nil {
		parsed, err := FromArgs(s.ID, s.Shape, s.Args)
		if err != nil {
			return Spec{}, err
		}
		if parsed.Zoom == 0 {
			parsed.Zoom = s.Zoom
		}
		s = parsed
	}
	zoom := s.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	s.Width /= zoom
	s.Height /= zoom
	s.Zoom = 1
	return s, nil
}
