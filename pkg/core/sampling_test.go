package core

import (
	"math"
	"testing"
)

func TestRandomSamplerDeterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)

	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Expected identical sequences for identical seeds at draw %d", i)
		}
	}
}

func TestRandomSamplerRange(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := sampler.Get3D()
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0 || c >= 1 {
				t.Fatalf("Sample %f outside [0, 1)", c)
			}
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
	}
}

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(sampler)
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
		mean = mean.Add(p)
	}

	// Uniform distribution is centred on the origin
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Expected point in z=0 plane, got %v", p)
		}
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Point %v outside unit disk", p)
		}
	}
}

func TestSamplePointInUnitDiskCenter(t *testing.T) {
	p := SamplePointInUnitDisk(NewVec2(0.5, 0.5))
	if p != (Vec3{}) {
		t.Errorf("Expected origin for centre sample, got %v", p)
	}
}
