package renderer

import (
	"context"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// RowRenderer renders row ranges of a single frame into a shared framebuffer.
// Concurrent calls must use disjoint row ranges.
type RowRenderer struct {
	world       geometry.Shape
	camera      *Camera
	integrator  integrator.Integrator
	config      Config
	framebuffer *Framebuffer
	progress    *progressTracker
}

// NewRowRenderer creates a row renderer writing into framebuffer
func NewRowRenderer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, config Config, framebuffer *Framebuffer) *RowRenderer {
	return &RowRenderer{
		world:       world,
		camera:      camera,
		integrator:  integratorInst,
		config:      config,
		framebuffer: framebuffer,
	}
}

// RenderRows renders every pixel in rows, storing the raw sum of
// SamplesPerPixel samples in each framebuffer cell
func (rr *RowRenderer) RenderRows(ctx context.Context, rows RowRange, sampler core.Sampler) (JobStats, error) {
	start := time.Now()
	stats := JobStats{Rows: rows}

	width := rr.framebuffer.Width
	height := rr.framebuffer.Height
	samplesPerPixel := rr.config.SamplesPerPixel

	// Render top-down to match the order rows are written out
	for j := rows.End - 1; j >= rows.Start; j-- {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		row := rr.framebuffer.Row(j)
		for i := 0; i < width; i++ {
			var colorAccum core.Vec3
			for s := 0; s < samplesPerPixel; s++ {
				u := (float64(i) + sampler.Get1D()) / float64(width-1)
				v := (float64(j) + sampler.Get1D()) / float64(height-1)
				ray := rr.camera.GetRay(u, v, sampler)
				colorAccum = colorAccum.Add(rr.integrator.RayColor(ray, rr.world, sampler, rr.config.MaxDepth))
			}
			row[i] = colorAccum
		}

		stats.Pixels += width
		stats.Samples += width * samplesPerPixel
		if rr.progress != nil {
			rr.progress.rowDone()
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
