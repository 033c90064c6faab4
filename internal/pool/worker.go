package pool

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// Worker consumes commit refs from a channel and reports one BuildResult per
// job. Errors never cross the goroutine boundary; they travel inside the
// result object.
type Worker struct {
	id      int
	do      Do
	jobs    <-chan entities.CommitRef
	results chan<- entities.BuildResult
}

// NewWorker creates a worker reading from jobs and reporting on results.
func NewWorker(id int, do Do, jobs <-chan entities.CommitRef, results chan<- entities.BuildResult) *Worker {
	return &Worker{
		id:      id,
		do:      do,
		jobs:    jobs,
		results: results,
	}
}

// Start processes jobs until the channel is closed or the context is
// cancelled. A cancelled context stops the worker between jobs; the job in
// flight finishes normally.
func (it *Worker) Start(ctx context.Context) {
	log := logger.WithField("worker", it.id)
	log.Debug("worker starting")
	defer log.Debug("worker stopped")

	for {
		select {
		case ref, ok := <-it.jobs:
			if !ok {
				return
			}
			it.results <- it.do(ctx, ref)
		case <-ctx.Done():
			return
		}
	}
}
