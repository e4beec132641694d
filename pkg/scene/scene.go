package scene

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/log"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

var ErrInvalidScene = errors.New("scene: invalid scene description")

// SphereSpec describes one sphere. Exactly one of Material and
// MaterialRef must be set; MaterialRef names an entry of
// Description.Materials shared between spheres.
type SphereSpec struct {
	Center      core.Vec3      `json:"center"`
	Radius      float64        `json:"radius"`
	Material    *material.Spec `json:"material,omitempty"`
	MaterialRef string         `json:"materialRef,omitempty"`
}

// Description is the serializable form of a scene
type Description struct {
	Name        string                   `json:"name,omitempty"`
	Description string                   `json:"description,omitempty"`
	Image       renderer.Config          `json:"image"`
	Camera      renderer.CameraConfig    `json:"camera"`
	Background  integrator.Background    `json:"background"`
	Materials   map[string]material.Spec `json:"materials,omitempty"`
	Spheres     []SphereSpec             `json:"spheres"`
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Config       renderer.Config
	CameraConfig renderer.CameraConfig
	Camera       *renderer.Camera
	Background   integrator.Background
	World        *geometry.ShapeList
}

// Build validates the description and constructs the world and camera.
// The camera aspect ratio always follows the image, and a zero focus
// distance focuses on LookAt.
func (d Description) Build() (*Scene, error) {
	if err := d.Image.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", d.Name, err)
	}

	cameraConfig := d.Camera
	cameraConfig.AspectRatio = d.Image.AspectRatio
	if cameraConfig.FocusDistance == 0 {
		cameraConfig.FocusDistance = cameraConfig.LookFrom.Subtract(cameraConfig.LookAt).Length()
	}
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", d.Name, err)
	}

	// Named materials are built once and shared by reference
	shared := make(map[string]material.Material, len(d.Materials))
	for _, name := range slices.Sorted(maps.Keys(d.Materials)) {
		mat, err := d.Materials[name].Build()
		if err != nil {
			return nil, fmt.Errorf("scene %q: material %q: %w", d.Name, name, err)
		}
		shared[name] = mat
	}

	world := geometry.NewShapeList()
	for i, spec := range d.Spheres {
		mat, err := resolveMaterial(spec, shared)
		if err != nil {
			return nil, fmt.Errorf("scene %q: sphere %d: %w", d.Name, i, err)
		}
		sphere, err := geometry.NewSphere(spec.Center, spec.Radius, mat)
		if err != nil {
			return nil, fmt.Errorf("scene %q: sphere %d: %w", d.Name, i, err)
		}
		world.Add(sphere)
	}

	logger.Debugf("built scene %q: %d spheres, %d shared materials", d.Name, world.Len(), len(shared))
	return &Scene{
		Name:         d.Name,
		Config:       d.Image,
		CameraConfig: cameraConfig,
		Camera:       camera,
		Background:   d.Background,
		World:        world,
	}, nil
}

func resolveMaterial(spec SphereSpec, shared map[string]material.Material) (material.Material, error) {
	switch {
	case spec.Material != nil && spec.MaterialRef != "":
		return nil, fmt.Errorf("%w: both material and materialRef %q set", ErrInvalidScene, spec.MaterialRef)
	case spec.Material != nil:
		return spec.Material.Build()
	case spec.MaterialRef != "":
		mat, ok := shared[spec.MaterialRef]
		if !ok {
			return nil, fmt.Errorf("%w: undefined material %q", ErrInvalidScene, spec.MaterialRef)
		}
		return mat, nil
	default:
		return nil, fmt.Errorf("%w: no material", ErrInvalidScene)
	}
}

// NewRaytracer wires the scene into a path tracing renderer
func (s *Scene) NewRaytracer() (*renderer.Raytracer, error) {
	return renderer.NewRaytracer(s.World, s.Camera, integrator.NewPathTracingIntegrator(s.Background), s.Config)
}
