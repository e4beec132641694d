package renderer

import (
	"sync/atomic"

	"github.com/df07/go-sphere-pathtracer/pkg/log"
)

// ProgressFunc is called after each finished row with the number of rows
// done so far. It is called concurrently from several workers.
type ProgressFunc func(rowsDone, totalRows int)

// progressTracker counts finished rows across all jobs of a render
type progressTracker struct {
	rowsDone  atomic.Int64
	totalRows int
	callback  ProgressFunc
	logger    log.Logger
}

func newProgressTracker(totalRows int, callback ProgressFunc, logger log.Logger) *progressTracker {
	return &progressTracker{
		totalRows: totalRows,
		callback:  callback,
		logger:    logger,
	}
}

func (p *progressTracker) rowDone() {
	done := int(p.rowsDone.Add(1))

	// Exactly one row crosses each percentage boundary
	percent := done * 100 / p.totalRows
	if percent != (done-1)*100/p.totalRows {
		p.logger.Debugf("finished %d%% (%d/%d rows)", percent, done, p.totalRows)
	}

	if p.callback != nil {
		p.callback(done, p.totalRows)
	}
}

