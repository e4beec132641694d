package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// JobStats contains statistics about a single row-range job
type JobStats struct {
	JobID    int
	WorkerID int
	Rows     RowRange
	Pixels   int
	Samples  int
	Duration time.Duration
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	NumWorkers      int
	TotalPixels     int
	TotalSamples    int
	Duration        time.Duration
	Jobs            []JobStats // Ordered by job ID
}

// SamplesPerSecond returns the sampling throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// WriteTable renders a per-job breakdown of the statistics to w
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Job", "Worker", "Rows", "Pixels", "Samples", "Render time"})
	for _, job := range s.Jobs {
		table.Append([]string{
			fmt.Sprintf("%d", job.JobID),
			fmt.Sprintf("%d", job.WorkerID),
			fmt.Sprintf("%d-%d", job.Rows.Start, job.Rows.End-1),
			fmt.Sprintf("%d", job.Pixels),
			fmt.Sprintf("%d", job.Samples),
			job.Duration.Round(time.Millisecond).String(),
		})
	}
	table.SetFooter([]string{
		"", fmt.Sprintf("%d workers", s.NumWorkers), fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%d", s.TotalPixels), fmt.Sprintf("%d", s.TotalSamples),
		s.Duration.Round(time.Millisecond).String(),
	})
	table.Render()
}
