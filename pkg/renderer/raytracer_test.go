package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// MockIntegrator returns a fixed color, optionally panicking on selected rays
type MockIntegrator struct {
	returnColor core.Vec3
	panicFn     func(ray core.Ray) bool
	callCount   atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	m.callCount.Add(1)
	if m.panicFn != nil && m.panicFn(ray) {
		panic("integrator fault")
	}
	return m.returnColor
}

func createTestRaytracer(t *testing.T, world geometry.Shape, integratorInst integrator.Integrator, config Config) *Raytracer {
	t.Helper()
	cameraConfig := testCameraConfig()
	cameraConfig.AspectRatio = config.AspectRatio
	camera := mustCamera(t, cameraConfig)

	rt, err := NewRaytracer(world, camera, integratorInst, config)
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	return rt
}

func TestNewRaytracerRejectsInvalidConfig(t *testing.T) {
	config := validTestConfig()
	config.SamplesPerPixel = 0
	camera := mustCamera(t, testCameraConfig())

	_, err := NewRaytracer(geometry.NewShapeList(), camera, &MockIntegrator{}, config)
	if !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}
}

func TestRaytracerFillsEveryPixel(t *testing.T) {
	config := validTestConfig()
	mock := &MockIntegrator{returnColor: core.NewVec3(0.25, 0.5, 1)}
	rt := createTestRaytracer(t, geometry.NewShapeList(), mock, config)

	var lastProgress atomic.Int64
	rt.SetProgressFunc(func(rowsDone, totalRows int) {
		if totalRows != config.Height() {
			t.Errorf("Expected %d total rows, got %d", config.Height(), totalRows)
		}
		for {
			prev := lastProgress.Load()
			if int64(rowsDone) <= prev || lastProgress.CompareAndSwap(prev, int64(rowsDone)) {
				break
			}
		}
	})

	fb, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	width, height := config.Width, config.Height()
	expectedSum := mock.returnColor.Multiply(float64(config.SamplesPerPixel))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if fb.Sum(col, row).Subtract(expectedSum).Length() > 1e-12 {
				t.Fatalf("pixel (%d,%d): expected raw sum %v, got %v", col, row, expectedSum, fb.Sum(col, row))
			}
		}
	}

	totalSamples := int64(width * height * config.SamplesPerPixel)
	if mock.callCount.Load() != totalSamples {
		t.Errorf("Expected %d integrator calls, got %d", totalSamples, mock.callCount.Load())
	}
	if stats.TotalSamples != int(totalSamples) || stats.TotalPixels != width*height {
		t.Errorf("Unexpected stats totals: %+v", stats)
	}
	if len(stats.Jobs) != config.NumJobs() {
		t.Errorf("Expected %d job stats, got %d", config.NumJobs(), len(stats.Jobs))
	}
	for i, job := range stats.Jobs {
		if job.JobID != i {
			t.Errorf("Expected job stats ordered by id, got %d at %d", job.JobID, i)
		}
	}
	if lastProgress.Load() != int64(height) {
		t.Errorf("Expected progress to reach %d rows, got %d", height, lastProgress.Load())
	}
}

func TestRaytracerPropagatesJobFailure(t *testing.T) {
	config := validTestConfig()
	mock := &MockIntegrator{
		returnColor: core.NewVec3(1, 1, 1),
		// Fail only on rays through the upper half of the image
		panicFn: func(ray core.Ray) bool { return ray.Direction.Y > 0.5 },
	}
	rt := createTestRaytracer(t, geometry.NewShapeList(), mock, config)

	fb, _, err := rt.Render(context.Background())
	if !errors.Is(err, ErrJobFailed) {
		t.Fatalf("Expected ErrJobFailed, got %v", err)
	}
	if fb != nil {
		t.Error("Expected no framebuffer after a failed render")
	}
}

func TestRaytracerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)}
	rt := createTestRaytracer(t, geometry.NewShapeList(), mock, validTestConfig())

	fb, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if fb != nil {
		t.Error("Expected no framebuffer after cancellation")
	}
	if mock.callCount.Load() != 0 {
		t.Errorf("Expected no samples after cancellation, got %d", mock.callCount.Load())
	}
}

func TestRaytracerDeterministicAcrossWorkerCounts(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -2), 0.75, mat)
	if err != nil {
		t.Fatal(err)
	}
	world := geometry.NewShapeList(sphere)
	pathTracer := integrator.NewPathTracingIntegrator(integrator.DefaultBackground())

	// Same job partition and seeds, different pool sizes
	single := validTestConfig()
	single.NumWorkers, single.JobsPerWorker = 1, 4
	multi := validTestConfig()
	multi.NumWorkers, multi.JobsPerWorker = 4, 1

	fbSingle, _, err := createTestRaytracer(t, world, pathTracer, single).Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	fbMulti, _, err := createTestRaytracer(t, world, pathTracer, multi).Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for row := 0; row < single.Height(); row++ {
		for col := 0; col < single.Width; col++ {
			if fbSingle.Sum(col, row) != fbMulti.Sum(col, row) {
				t.Fatalf("pixel (%d,%d) differs: %v vs %v", col, row, fbSingle.Sum(col, row), fbMulti.Sum(col, row))
			}
		}
	}
}

func TestRaytracerDiffuseSphereDarkerThanSky(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, mat)
	if err != nil {
		t.Fatal(err)
	}

	config := Config{
		Width:           21,
		AspectRatio:     1.0,
		SamplesPerPixel: 8,
		MaxDepth:        1,
		NumWorkers:      2,
		JobsPerWorker:   4,
		Seed:            7,
	}
	rt := createTestRaytracer(t, geometry.NewShapeList(sphere), integrator.NewPathTracingIntegrator(integrator.DefaultBackground()), config)

	fb, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	luma := func(col, row int) float64 {
		c := fb.Color(col, row)
		return core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Luminance()
	}

	center := luma(10, 10)
	for _, edge := range [][2]int{{0, 0}, {20, 0}, {0, 20}, {20, 20}, {0, 10}, {20, 10}} {
		if edgeLuma := luma(edge[0], edge[1]); center >= edgeLuma {
			t.Errorf("Expected centre (%f) darker than edge pixel %v (%f)", center, edge, edgeLuma)
		}
	}
}
