//go:build integration || unit || test

// Package commanddoubles provides test doubles for the command interfaces.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/migfetch/internal/domain/commands"
	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// SpyBuildCommand implements commands.Build with canned per-SHA outcomes.
// It is safe for concurrent use so pool-driven tests can share one instance.
type SpyBuildCommand struct {
	// Statuses maps a commit SHA to the status its build should report.
	// Unlisted SHAs report StatusBuilt.
	Statuses map[string]entities.BuildStatus
	Err      error // attached to results reporting StatusFailed

	Calls []entities.CommitRef

	mu sync.Mutex
}

var _ commands.Build = (*SpyBuildCommand)(nil)

func (it *SpyBuildCommand) Execute(
	_ context.Context,
	_ repositories.ProviderRepository,
	target entities.CommitRef,
	_ *entities.Settings,
) entities.BuildResult {
	it.mu.Lock()
	it.Calls = append(it.Calls, target)
	it.mu.Unlock()

	status := entities.StatusBuilt
	if canned, ok := it.Statuses[target.SHA]; ok {
		status = canned
	}
	result := entities.BuildResult{Ref: target, Status: status}
	if status == entities.StatusFailed {
		result.Err = it.Err
	}
	return result
}
