package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: normal,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Expected scattered ray to start at hit point, got %v", scatter.Scattered.Origin)
		}
		// normal + unit vector never points below the surface
		if scatter.Scattered.Direction.Dot(normal) < -1e-12 {
			t.Fatalf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal}

	// (1, 0) maps to the unit vector (0, 0, -1), exactly cancelling the normal
	sampler := fixedSampler{twoD: core.NewVec2(1, 0)}

	scatter, didScatter := lambertian.Scatter(core.NewRay(core.NewVec3(1, 2, 4), core.NewVec3(0, 0, -1)), hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback direction %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_AttenuationBounded(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	sampler := core.NewRandomSampler(random)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 200; i++ {
		albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
		incoming := core.NewVec3(random.Float64()*4, random.Float64()*4, random.Float64()*4)

		scatter, _ := NewLambertian(albedo).Scatter(ray, hit, sampler)
		outgoing := scatter.Attenuation.MultiplyVec(incoming)
		if outgoing.Luminance() > incoming.Luminance() {
			t.Fatalf("Luminance grew from %f to %f with albedo %v", incoming.Luminance(), outgoing.Luminance(), albedo)
		}
	}
}
