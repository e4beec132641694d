package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

var (
	ErrInvalidDimensions = errors.New("renderer: image must be at least 2x2 pixels")
	ErrInvalidSamples    = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidDepth      = errors.New("renderer: max depth must be positive")
	ErrInvalidWorkers    = errors.New("renderer: worker and job counts must be positive and bounded")
)

// DefaultJobsPerWorker oversubscribes the pool so that expensive rows
// (glass, deep bounces) do not leave workers idle at the end of a render.
const DefaultJobsPerWorker = 4

// Upper bounds for the worker pool; their product is the largest job count
const (
	MaxWorkers       = 4096
	MaxJobsPerWorker = 1024
)

// Config contains rendering configuration
type Config struct {
	Width           int     `json:"width"`           // Image width in pixels
	AspectRatio     float64 `json:"aspectRatio"`     // Width / height; height is derived
	SamplesPerPixel int     `json:"samplesPerPixel"` // Number of rays per pixel
	MaxDepth        int     `json:"maxDepth"`        // Maximum ray bounce depth
	NumWorkers      int     `json:"workers"`         // Size of the worker pool
	JobsPerWorker   int     `json:"jobsPerWorker"`   // Row-range jobs per worker
	Seed            int64   `json:"seed"`            // Base seed; job i samples with Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           1200,
		AspectRatio:     3.0 / 2.0,
		SamplesPerPixel: 20,
		MaxDepth:        10,
		NumWorkers:      DefaultWorkerCount(),
		JobsPerWorker:   DefaultJobsPerWorker,
		Seed:            42,
	}
}

// Height returns the image height derived from width and aspect ratio
func (c Config) Height() int {
	if !(c.AspectRatio > 0) {
		return 0
	}
	return int(float64(c.Width) / c.AspectRatio)
}

// NumJobs returns the number of row-range jobs the image is split into
func (c Config) NumJobs() int {
	return c.NumWorkers * c.JobsPerWorker
}

// Validate rejects configurations that would fail or divide by zero mid-render
func (c Config) Validate() error {
	if c.Width <= 1 || c.Height() <= 1 {
		return fmt.Errorf("%w: got width %d, aspect ratio %g (height %d)", ErrInvalidDimensions, c.Width, c.AspectRatio, c.Height())
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.MaxDepth)
	}
	if c.NumWorkers <= 0 || c.JobsPerWorker <= 0 || c.NumWorkers > MaxWorkers || c.JobsPerWorker > MaxJobsPerWorker {
		return fmt.Errorf("%w: got %d workers, %d jobs per worker (limits %d, %d)",
			ErrInvalidWorkers, c.NumWorkers, c.JobsPerWorker, MaxWorkers, MaxJobsPerWorker)
	}
	return nil
}

// DefaultWorkerCount sizes the pool at half the hardware threads plus one
func DefaultWorkerCount() int {
	threads, err := cpu.Counts(true)
	if err != nil || threads <= 0 {
		threads = runtime.NumCPU()
	}
	return threads/2 + 1
}
