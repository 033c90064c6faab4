package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/migfetch/internal/archive"
	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// Build is the interface for building one migration repository.
type Build interface {
	Execute(
		ctx context.Context,
		provider repositories.ProviderRepository,
		target entities.CommitRef,
		settings *entities.Settings,
	) entities.BuildResult
}

// BuildCommand rebuilds one migration entry as a two-branch repository:
// resolve the target's sole parent, materialize the parent snapshot as the
// initial commit on the base branch, materialize the target snapshot as one
// commit on the patch branch, then publish atomically by renaming the staged
// repository into the canonical path.
//
// A pre-existing canonical directory is treated as already built and skipped
// without validation; the recovery path for a suspect directory is to delete
// it and re-run.
type BuildCommand struct {
	vcs repositories.VersionControlRepository
}

// NewBuildCommand creates a BuildCommand over the given sequencer.
func NewBuildCommand(vcs repositories.VersionControlRepository) *BuildCommand {
	return &BuildCommand{vcs: vcs}
}

// Execute runs the full pipeline for one target commit. Every failure aborts
// only this job and leaves nothing at the canonical path.
func (it *BuildCommand) Execute(
	ctx context.Context,
	provider repositories.ProviderRepository,
	target entities.CommitRef,
	settings *entities.Settings,
) entities.BuildResult {
	// Branch configuration is checked before any network call is made.
	if err := entities.ValidateBranchNames(settings.BaseBranch, settings.PatchBranch); err != nil {
		return entities.BuildResult{Ref: target, Status: entities.StatusFailed, Err: err}
	}

	canonical := filepath.Join(settings.OutputDir, target.FolderName())
	if _, err := os.Stat(canonical); err == nil {
		logger.Infof("Skipping %s (already exists at %s)", target, canonical)
		return entities.BuildResult{Ref: target, Status: entities.StatusSkipped}
	}

	job, err := it.resolveParent(ctx, provider, target, canonical, settings)
	if err != nil {
		return entities.BuildResult{Ref: target, Status: entities.StatusFailed, Err: err}
	}

	if err := it.build(ctx, provider, job, time.Duration(settings.RateLimit)); err != nil {
		return entities.BuildResult{Ref: target, Status: entities.StatusFailed, Err: err}
	}

	logger.Infof("Built %s at %s", target, canonical)
	return entities.BuildResult{Ref: target, Status: entities.StatusBuilt}
}

// resolveParent queries parent metadata and derives the MigrationJob. A
// target with zero or multiple parents has no well-defined single preceding
// snapshot and is rejected, not approximated.
func (it *BuildCommand) resolveParent(
	ctx context.Context,
	provider repositories.ProviderRepository,
	target entities.CommitRef,
	canonical string,
	settings *entities.Settings,
) (entities.MigrationJob, error) {
	count, parentSHA, err := provider.CommitParents(ctx, target)
	if err != nil {
		return entities.MigrationJob{}, fmt.Errorf("failed to resolve parent of %s: %w", target, err)
	}
	if count != 1 {
		return entities.MigrationJob{}, fmt.Errorf(
			"%w: %s has %d parents", entities.ErrUnsupportedParentTopology, target, count)
	}
	if parentSHA == "" {
		return entities.MigrationJob{}, fmt.Errorf(
			"%w: %s reports one parent but no parent SHA", entities.ErrUnsupportedParentTopology, target)
	}

	base := entities.CommitRef{Repo: target.Repo, SHA: parentSHA}
	return entities.NewMigrationJob(
		target, base, canonical, settings.BaseBranch, settings.PatchBranch)
}

// build materializes both snapshots inside a private staging directory and
// publishes the result. The staging directory is removed on every exit path;
// the canonical path is only ever created by the final rename.
func (it *BuildCommand) build(
	ctx context.Context,
	provider repositories.ProviderRepository,
	job entities.MigrationJob,
	delay time.Duration,
) error {
	outputRoot := filepath.Dir(job.Dir)
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create output root %q: %w", outputRoot, err)
	}

	// The staging name carries the job identity plus a process-unique
	// suffix, so concurrent jobs never share a path and a stale staging
	// directory never shadows a canonical one.
	staging := filepath.Join(outputRoot, fmt.Sprintf(
		".staging__%s__%s", job.Target.FolderName(), uuid.NewString()))
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Warnf("Failed to clean staging directory %q: %v", staging, err)
		}
	}()

	repoDir := filepath.Join(staging, "repo")
	workDir := filepath.Join(staging, "work")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory %q: %w", staging, err)
	}

	if err := it.materializeBase(ctx, provider, job, workDir, repoDir, delay); err != nil {
		return err
	}
	if err := it.commitBase(repoDir, job); err != nil {
		return err
	}
	if err := it.vcs.CreateBranchAndCheckout(repoDir, job.PatchBranch); err != nil {
		return fmt.Errorf("failed to create patch branch for %s: %w", job.Target, err)
	}
	if err := it.materializePatch(ctx, provider, job, workDir, repoDir, delay); err != nil {
		return err
	}
	if err := it.vcs.CommitAll(repoDir, entities.PatchCommitMessage); err != nil {
		return fmt.Errorf("failed to commit patch snapshot for %s: %w", job.Target, err)
	}
	return it.publish(repoDir, job)
}

// materializeBase downloads and extracts the parent snapshot, and makes the
// extracted tree the staging repository worktree. No metadata exists yet, so
// the tree is moved wholesale instead of overlaid.
func (it *BuildCommand) materializeBase(
	ctx context.Context,
	provider repositories.ProviderRepository,
	job entities.MigrationJob,
	workDir, repoDir string,
	delay time.Duration,
) error {
	extracted, err := it.fetchSnapshot(ctx, provider, job.Base, workDir, delay)
	if err != nil {
		return err
	}
	if renameErr := os.Rename(extracted, repoDir); renameErr != nil {
		return fmt.Errorf("failed to stage base snapshot of %s: %w", job.Base, renameErr)
	}
	return nil
}

// commitBase initializes version control on the staged tree and records the
// initial commit on the base branch.
func (it *BuildCommand) commitBase(repoDir string, job entities.MigrationJob) error {
	if err := it.vcs.Init(repoDir, job.BaseBranch); err != nil {
		return fmt.Errorf("failed to initialize repository for %s: %w", job.Target, err)
	}
	if err := it.vcs.CommitAll(repoDir, entities.BaseCommitMessage); err != nil {
		return fmt.Errorf("failed to commit base snapshot for %s: %w", job.Target, err)
	}
	return nil
}

// materializePatch downloads and extracts the target snapshot and overlays
// it onto the worktree, preserving the version-control metadata.
func (it *BuildCommand) materializePatch(
	ctx context.Context,
	provider repositories.ProviderRepository,
	job entities.MigrationJob,
	workDir, repoDir string,
	delay time.Duration,
) error {
	extracted, err := it.fetchSnapshot(ctx, provider, job.Target, workDir, delay)
	if err != nil {
		return err
	}
	if overlayErr := archive.Overlay(extracted, repoDir, ".git"); overlayErr != nil {
		return fmt.Errorf("failed to overlay snapshot of %s: %w", job.Target, overlayErr)
	}
	return nil
}

// fetchSnapshot applies the per-request rate-limit delay, downloads the
// commit archive and extracts it inside workDir.
func (it *BuildCommand) fetchSnapshot(
	ctx context.Context,
	provider repositories.ProviderRepository,
	ref entities.CommitRef,
	workDir string,
	delay time.Duration,
) (string, error) {
	if err := it.throttle(ctx, delay); err != nil {
		return "", err
	}

	tarball, err := provider.DownloadArchive(ctx, ref, workDir)
	if err != nil {
		return "", fmt.Errorf("failed to download archive of %s: %w", ref, err)
	}

	extracted, err := archive.Extract(tarball, workDir)
	if err != nil {
		return "", fmt.Errorf("failed to extract archive of %s: %w", ref, err)
	}
	return extracted, nil
}

// publish leaves the repository checked out on the base branch and renames
// it into the canonical path. An existing canonical path at this instant is
// a lost publish race; the job fails without overwriting.
func (it *BuildCommand) publish(repoDir string, job entities.MigrationJob) error {
	if err := it.vcs.Checkout(repoDir, job.BaseBranch); err != nil {
		return fmt.Errorf("failed to checkout base branch for %s: %w", job.Target, err)
	}

	if _, err := os.Stat(job.Dir); err == nil {
		return fmt.Errorf("%w: %q", entities.ErrAlreadyPublished, job.Dir)
	}
	if err := os.Rename(repoDir, job.Dir); err != nil {
		if _, statErr := os.Stat(job.Dir); statErr == nil {
			return fmt.Errorf("%w: %q", entities.ErrAlreadyPublished, job.Dir)
		}
		return fmt.Errorf("failed to publish %s: %w", job.Target, err)
	}
	return nil
}

// throttle blocks the calling worker for the configured delay. Only the
// issuing worker waits, never the pool.
func (it *BuildCommand) throttle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job aborted: %w", ctx.Err())
	}
}
