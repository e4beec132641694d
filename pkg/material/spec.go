package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Type names the closed set of supported materials
type Type string

const (
	TypeLambertian Type = "lambertian"
	TypeMetal      Type = "metal"
	TypeDielectric Type = "dielectric"
)

var (
	ErrUnknownMaterial = errors.New("material: unknown material type")
	ErrInvalidMaterial = errors.New("material: invalid material parameters")
)

// Spec is a tagged description of a material. Only the fields relevant
// to Type are read.
type Spec struct {
	Type            Type      `json:"type"`
	Albedo          core.Vec3 `json:"albedo,omitempty"`
	Fuzz            float64   `json:"fuzz,omitempty"`
	RefractionIndex float64   `json:"refractionIndex,omitempty"`
}

// LambertianSpec returns a spec for a diffuse material
func LambertianSpec(albedo core.Vec3) Spec {
	return Spec{Type: TypeLambertian, Albedo: albedo}
}

// MetalSpec returns a spec for a metal material
func MetalSpec(albedo core.Vec3, fuzz float64) Spec {
	return Spec{Type: TypeMetal, Albedo: albedo, Fuzz: fuzz}
}

// DielectricSpec returns a spec for a dielectric material
func DielectricSpec(refractionIndex float64) Spec {
	return Spec{Type: TypeDielectric, RefractionIndex: refractionIndex}
}

// Validate checks the parameters for the tagged type
func (s Spec) Validate() error {
	switch s.Type {
	case TypeLambertian:
		return nil
	case TypeMetal:
		if s.Fuzz < 0 || s.Fuzz > 1 {
			return fmt.Errorf("%w: metal fuzz %g outside [0, 1]", ErrInvalidMaterial, s.Fuzz)
		}
		return nil
	case TypeDielectric:
		if s.RefractionIndex <= 0 {
			return fmt.Errorf("%w: dielectric refraction index %g must be positive", ErrInvalidMaterial, s.RefractionIndex)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, s.Type)
	}
}

// Build validates the spec and creates the material it describes
func (s Spec) Build() (Material, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Type {
	case TypeMetal:
		return NewMetal(s.Albedo, s.Fuzz), nil
	case TypeDielectric:
		return NewDielectric(s.RefractionIndex), nil
	default:
		return NewLambertian(s.Albedo), nil
	}
}
