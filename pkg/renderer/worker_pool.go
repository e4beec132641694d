package renderer

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

var ErrJobFailed = errors.New("renderer: render job failed")

// RowJob is a row-range rendering task for the worker pool
type RowJob struct {
	ID   int      // Position in the partition, top of the image first
	Rows RowRange // Rows owned exclusively by this job
	Seed int64    // Seed for the job's private sampler
}

// JobResult contains the result from rendering a job
type JobResult struct {
	JobID int
	Stats JobStats
	Error error
}

// JobFunc renders one job on the given worker
type JobFunc func(job RowJob, workerID int) (JobStats, error)

// WorkerPool manages parallel row-range rendering on a fixed set of goroutines
type WorkerPool struct {
	taskQueue   chan RowJob
	resultQueue chan JobResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual rendering jobs
type Worker struct {
	ID          int
	render      JobFunc
	taskQueue   chan RowJob
	resultQueue chan JobResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxJobs bounds the queues so that submitting and completing jobs never blocks.
func NewWorkerPool(numWorkers, maxJobs int, render JobFunc) *WorkerPool {
	wp := &WorkerPool{
		taskQueue:   make(chan RowJob, maxJobs),
		resultQueue: make(chan JobResult, maxJobs),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			render:      render,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for every submitted job to finish and closes the result queue.
// Results written before Stop returns are visible to the caller.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a job to the worker pool
func (wp *WorkerPool) SubmitTask(job RowJob) {
	wp.taskQueue <- job
}

// GetResult retrieves a completed job result
func (wp *WorkerPool) GetResult() (JobResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range w.taskQueue {
		stats, err := w.safeRender(job)
		w.resultQueue <- JobResult{
			JobID: job.ID,
			Stats: stats,
			Error: err,
		}
	}
}

// safeRender turns a panic inside a job into an error so that the pool keeps
// draining its queue and the driver sees the failure at the join.
func (w *Worker) safeRender(job RowJob) (stats JobStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: job %d (rows %d-%d) on worker %d panicked: %v\n%s",
				ErrJobFailed, job.ID, job.Rows.Start, job.Rows.End-1, w.ID, r, debug.Stack())
		}
	}()
	return w.render(job, w.ID)
}
