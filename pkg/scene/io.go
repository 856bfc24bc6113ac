package scene

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack"
)

var validStates = map[string]bool{
	pack.Growing.String(): true,
	pack.Stopped.String(): true,
}

// Marshal encodes s as indented JSON.
func Marshal(s *Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal decodes and validates a scene.
func Unmarshal(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the invariants every renderer relies on: a positive size,
// at least the seed circle, known states and in-range contact indices.
func (s *Scene) Validate() error {
	if s.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "size must be positive, got %v", s.Size)
	}
	if len(s.Circles) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no circles")
	}
	for i, c := range s.Circles {
		if c.R < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "circle %d has negative radius %v", i, c.R)
		}
		if !validStates[c.State] {
			return errors.New(errors.ErrCodeInvalidScene, "circle %d has unknown state %q", i, c.State)
		}
	}
	for _, c := range s.Contacts {
		if c.A < 0 || c.B < 0 || c.A >= len(s.Circles) || c.B >= len(s.Circles) {
			return errors.New(errors.ErrCodeInvalidScene, "contact %d-%d references a missing circle", c.A, c.B)
		}
	}
	return nil
}

// Write encodes s to w.
func Write(s *Scene, w io.Writer) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a scene from r. Read does not close r.
func Read(r io.Reader) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// WriteFile writes s to path.
func WriteFile(s *Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads and validates the scene at path.
func ReadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read scene %s", path)
	}
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
