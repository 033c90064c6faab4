package commands

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/migfetch/internal/infrastructure/repositories"
	"github.com/rios0rios0/migfetch/internal/pool"
)

// progressEvery controls how often the running tally is logged.
const progressEvery = 10

// DownloadAll is the interface for the batch download command.
type DownloadAll interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts DownloadAllOptions,
	) (entities.BuildSummary, error)
}

// DownloadAllOptions holds runtime options for a batch run.
type DownloadAllOptions struct {
	DatasetRoot string
	MaxCount    int  // If > 0, limit the number of entries (for smoke runs)
	Progress    bool // Render a progress bar on the terminal
}

// DownloadAllCommand loads the dataset and pushes every entry through a
// bounded worker pool. Jobs are independent: one failure never cancels the
// siblings, and completion order is unspecified.
type DownloadAllCommand struct {
	dataset repositories.DatasetRepository
	build   Build
	factory infraRepos.ProviderFactory
}

// NewDownloadAllCommand creates a DownloadAllCommand.
func NewDownloadAllCommand(
	dataset repositories.DatasetRepository,
	build Build,
	factory infraRepos.ProviderFactory,
) *DownloadAllCommand {
	return &DownloadAllCommand{
		dataset: dataset,
		build:   build,
		factory: factory,
	}
}

// Execute processes the whole dataset and returns the per-status tally.
func (it *DownloadAllCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts DownloadAllOptions,
) (entities.BuildSummary, error) {
	refs, err := it.dataset.LoadAll(opts.DatasetRoot)
	if err != nil {
		return entities.BuildSummary{}, err
	}

	if opts.MaxCount > 0 && len(refs) > opts.MaxCount {
		refs = refs[:opts.MaxCount]
		logger.Infof("Limited to %d entries", opts.MaxCount)
	}

	provider := it.factory(settings.GitHub.Token)
	workers := pool.NewWorkerPool(settings.Workers, func(ctx context.Context, ref entities.CommitRef) entities.BuildResult {
		return it.build.Execute(ctx, provider, ref, settings)
	})

	logger.Infof("Processing %d entries with %d workers", len(refs), workers.Size())

	var bar *pb.ProgressBar
	if opts.Progress {
		bar = pb.Full.Start(len(refs))
	}

	processed := 0
	summary := workers.Run(ctx, refs, func(result entities.BuildResult) {
		if bar != nil {
			bar.Increment()
		}
		if result.Status == entities.StatusFailed {
			logger.Errorf("Failed to build %s: %v", result.Ref, result.Err)
		}
		processed++
		if processed%progressEvery == 0 {
			logger.Infof("Progress: %d/%d processed", processed, len(refs))
		}
	})

	if bar != nil {
		bar.Finish()
	}

	logger.Infof(
		"Run complete: %d built, %d skipped, %d failed",
		summary.Built, summary.Skipped, summary.Failed,
	)
	return summary, nil
}
