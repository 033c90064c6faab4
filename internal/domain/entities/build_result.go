package entities

// BuildStatus is the terminal state of one build job.
type BuildStatus int

const (
	// StatusBuilt means the repository was materialized and published.
	StatusBuilt BuildStatus = iota
	// StatusSkipped means the canonical directory already existed.
	StatusSkipped
	// StatusFailed means the job aborted; no canonical directory was left.
	StatusFailed
)

func (it BuildStatus) String() string {
	switch it {
	case StatusBuilt:
		return "built"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BuildResult reports the outcome of one job. Workers hand these back over a
// channel instead of letting errors cross goroutine boundaries.
type BuildResult struct {
	Ref    CommitRef
	Status BuildStatus
	Err    error // set only when Status is StatusFailed
}

// BuildSummary tallies results across a batch run.
type BuildSummary struct {
	Built   int
	Skipped int
	Failed  int
}

// Add records one result in the summary.
func (it *BuildSummary) Add(result BuildResult) {
	switch result.Status {
	case StatusBuilt:
		it.Built++
	case StatusSkipped:
		it.Skipped++
	case StatusFailed:
		it.Failed++
	}
}

// Total returns the number of recorded results.
func (it *BuildSummary) Total() int {
	return it.Built + it.Skipped + it.Failed
}
