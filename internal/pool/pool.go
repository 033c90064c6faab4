// Package pool runs independent build jobs through a bounded set of workers.
// Jobs share no mutable state; each worker reports a result object instead of
// panicking or erroring across goroutine boundaries, so one job's failure
// never affects its siblings. Completion order is unspecified.
package pool

import (
	"context"
	"sync"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// Do is the processing function executed by a worker for every job.
type Do func(ctx context.Context, ref entities.CommitRef) entities.BuildResult

// WorkerPool is a fixed-size pool of workers over an unbuffered job channel.
type WorkerPool struct {
	size int
	do   Do
}

// NewWorkerPool creates a pool that processes jobs with the given function
// using size concurrent workers.
func NewWorkerPool(size int, do Do) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{size: size, do: do}
}

// Size returns the number of workers the pool runs.
func (it *WorkerPool) Size() int {
	return it.size
}

// Run feeds every ref through the pool and blocks until all jobs reach a
// terminal state. onResult is invoked once per job from the collecting
// goroutine (never concurrently); it may be nil.
func (it *WorkerPool) Run(
	ctx context.Context,
	refs []entities.CommitRef,
	onResult func(entities.BuildResult),
) entities.BuildSummary {
	jobs := make(chan entities.CommitRef)
	results := make(chan entities.BuildResult)

	var workers sync.WaitGroup
	for id := range it.size {
		workers.Add(1)
		worker := NewWorker(id, it.do, jobs, results)
		go func() {
			defer workers.Done()
			worker.Start(ctx)
		}()
	}

	go func() {
		defer close(jobs)
		for _, ref := range refs {
			select {
			case jobs <- ref:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	var summary entities.BuildSummary
	for result := range results {
		summary.Add(result)
		if onResult != nil {
			onResult(result)
		}
	}
	return summary
}
