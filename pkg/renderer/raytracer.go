package renderer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// Raytracer drives a parallel render of a scene. The world, camera and
// integrator are shared read-only by every worker.
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	onProgress ProgressFunc
}

// NewRaytracer validates config and creates a raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil || camera == nil || integratorInst == nil {
		return nil, errors.New("renderer: world, camera and integrator are required")
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
	}, nil
}

// SetProgressFunc registers a callback invoked after every finished row
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.onProgress = fn
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the whole image and blocks until every job has finished.
// On failure or cancellation no framebuffer is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height()
	fb := NewFramebuffer(width, height, rt.config.SamplesPerPixel)

	rowRenderer := NewRowRenderer(rt.world, rt.camera, rt.integrator, rt.config, fb)
	rowRenderer.progress = newProgressTracker(height, rt.onProgress, logger)

	ranges := PartitionRows(height, rt.config.NumJobs())
	numWorkers := min(rt.config.NumWorkers, len(ranges))
	pool := NewWorkerPool(numWorkers, len(ranges), func(job RowJob, workerID int) (JobStats, error) {
		// Each job owns its sampler; generators are never shared across goroutines
		sampler := core.NewSeededSampler(job.Seed)
		stats, err := rowRenderer.RenderRows(ctx, job.Rows, sampler)
		stats.JobID = job.ID
		stats.WorkerID = workerID
		return stats, err
	})

	logger.Infof("rendering %dx%d at %d spp (max depth %d) with %d workers and %d jobs",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers(), len(ranges))

	pool.Start()
	for id, rows := range ranges {
		pool.SubmitTask(RowJob{ID: id, Rows: rows, Seed: rt.config.Seed + int64(id)})
	}
	// Join: every framebuffer write happens before Stop returns
	pool.Stop()

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      numWorkers,
	}

	var errs []error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		stats.Jobs = append(stats.Jobs, result.Stats)
		stats.TotalPixels += result.Stats.Pixels
		stats.TotalSamples += result.Stats.Samples
	}
	sort.Slice(stats.Jobs, func(i, j int) bool { return stats.Jobs[i].JobID < stats.Jobs[j].JobID })
	stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	if len(errs) > 0 {
		return nil, stats, fmt.Errorf("%d of %d jobs failed: %w", len(errs), len(ranges), errors.Join(errs...))
	}

	logger.Infof("render finished in %s (%.0f samples/s)", stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())
	return fb, stats, nil
}
