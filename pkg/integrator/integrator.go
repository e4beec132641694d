package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray, allowing at
	// most depth bounces. Implementations must be safe for concurrent use
	// as long as each caller passes its own sampler.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3
}

// Background is a vertical gradient sky, the only light source in a scene
type Background struct {
	Horizon core.Vec3 `json:"horizon"` // Color for rays pointing straight down
	Zenith  core.Vec3 `json:"zenith"`  // Color for rays pointing straight up
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the sky color seen along direction
func (b Background) Color(direction core.Vec3) core.Vec3 {
	// Map y from [-1,1] to [0,1]
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return b.Horizon.Multiply(1.0 - t).Add(b.Zenith.Multiply(t))
}
