package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// DefaultDescription returns the values a scene file starts from. Fields
// missing from the file keep these values.
func DefaultDescription() Description {
	return Description{
		Image: renderer.DefaultConfig(),
		Camera: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 0, 0),
			LookAt:   core.NewVec3(0, 0, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     90,
		},
		Background: integrator.DefaultBackground(),
	}
}

// Parse decodes a JSON scene description over DefaultDescription.
// Unknown fields are rejected so that typos do not silently fall back
// to defaults.
func Parse(data []byte) (Description, error) {
	desc := DefaultDescription()

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return desc, nil
}

// Load reads a scene description from a JSON file. The file name (without
// extension) is used when the file does not name the scene.
func Load(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("failed to read scene file: %w", err)
	}

	desc, err := Parse(data)
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// Save writes desc to a JSON file
func Save(path string, desc Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(desc); err != nil {
		f.Close()
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close scene: %w", err)
	}
	return nil
}
