package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boundlayout/pkg/core/region"
	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/errors"
)

// Supported scene formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Scene is the on-disk description of one layout.
type Scene struct {
	Name    string             `json:"name,omitempty" toml:"name"`
	Layout  sim.Options        `json:"layout" toml:"layout"`
	Regions []region.Spec      `json:"regions" toml:"region"`
	Nodes   []sim.ParticleSpec `json:"nodes" toml:"node"`
	Edges   []sim.Edge         `json:"edges,omitempty" toml:"edge"`
}

// Input returns the engine input described by the scene.
func (s *Scene) Input() sim.Input {
	return sim.Input{Regions: s.Regions, Particles: s.Nodes, Edges: s.Edges}
}

// Source serves the scene through the engine's source interfaces.
func (s *Scene) Source() sim.StaticSource {
	return sim.StaticSource{Input: s.Input()}
}

// FormatFromPath infers the scene format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format for %s (want .toml or .json)", path)
}

// Read decodes a scene in the given format.
func Read(r io.Reader, format string) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a scene from bytes.
func Parse(data []byte, format string) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scene")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	return &s, nil
}

// ReadFile loads a scene, choosing the decoder by file extension.
func ReadFile(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Write encodes s in the given format.
func Write(w io.Writer, s *Scene, format string) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
}
