package geom

import (
	"strings"

	"github.com/matzehuels/boundlayout/pkg/errors"
)

// Shape is the closed set of region boundary kinds.
type Shape int

const (
	// Rectangle is an axis-aligned rectangle.
	Rectangle Shape = iota
	// RoundedRectangle is treated exactly like Rectangle by the engine.
	RoundedRectangle
	// Ellipse is the ellipse inscribed in the region box.
	Ellipse
)

// Shape names as used in scene files and by the host visualization.
const (
	ShapeNameRectangle        = "Rectangle"
	ShapeNameRoundedRectangle = "Rounded Rectangle"
	ShapeNameEllipse          = "Ellipse"
)

// String returns the host-facing name of the shape.
func (s Shape) String() string {
	switch s {
	case Rectangle:
		return ShapeNameRectangle
	case RoundedRectangle:
		return ShapeNameRoundedRectangle
	case Ellipse:
		return ShapeNameEllipse
	}
	return "Unknown"
}

// IsElliptical reports whether containment uses the ellipse equation.
func (s Shape) IsElliptical() bool { return s == Ellipse }

// ParseShape maps a shape name to its kind. Matching ignores case, spaces,
// dashes and underscores, so "Rounded Rectangle", "rounded_rectangle" and
// "RoundedRectangle" are equivalent. An empty name means Rectangle.
func ParseShape(name string) (Shape, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))

	switch key {
	case "", "rectangle", "rect":
		return Rectangle, nil
	case "roundedrectangle", "roundrect":
		return RoundedRectangle, nil
	case "ellipse", "oval":
		return Ellipse, nil
	}
	return Rectangle, errors.New(errors.ErrCodeUnsupportedShape, "unsupported region shape %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
