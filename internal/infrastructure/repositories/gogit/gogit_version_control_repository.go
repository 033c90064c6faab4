// Package gogit implements the version-control sequencer on go-git. Every
// operation opens the repository by path so the caller holds no handle state
// between steps.
package gogit

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// VersionControlRepository sequences git operations over a directory.
type VersionControlRepository struct{}

// NewVersionControlRepository creates the go-git backed sequencer.
func NewVersionControlRepository() repositories.VersionControlRepository {
	return &VersionControlRepository{}
}

var _ repositories.VersionControlRepository = (*VersionControlRepository)(nil)

// Init creates a non-bare repository with the given initial branch.
func (it *VersionControlRepository) Init(dir, initialBranch string) error {
	ref := plumbing.NewBranchReferenceName(initialBranch)
	if validateErr := ref.Validate(); validateErr != nil {
		return fmt.Errorf("%w: %q", entities.ErrInvalidBranchName, initialBranch)
	}

	_, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: ref},
	})
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("%w: %q", entities.ErrAlreadyInitialized, dir)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize repository at %q: %w", dir, err)
	}
	return nil
}

// CommitAll stages the whole worktree and commits it with the synthetic
// migfetch identity. The original author is intentionally not preserved.
func (it *VersionControlRepository) CommitAll(dir, message string) error {
	worktree, err := openWorktree(dir)
	if err != nil {
		return err
	}

	if addErr := worktree.AddWithOptions(&git.AddOptions{All: true}); addErr != nil {
		return fmt.Errorf("failed to stage files in %q: %w", dir, addErr)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to read worktree status in %q: %w", dir, err)
	}
	if status.IsClean() {
		return fmt.Errorf("%w: worktree at %q is unchanged", entities.ErrNothingToCommit, dir)
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  entities.GitAuthorName,
			Email: entities.GitAuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit in %q: %w", dir, err)
	}
	return nil
}

// CreateBranchAndCheckout creates branch off the current HEAD and switches
// to it. The safety checks run in a fixed order: name collision first, then
// detached HEAD, then reference-name validity.
func (it *VersionControlRepository) CreateBranchAndCheckout(dir, branch string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if _, refErr := repo.Reference(ref, false); refErr == nil {
		return fmt.Errorf("%w: %q", entities.ErrBranchNameConflict, branch)
	} else if !errors.Is(refErr, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("failed to look up branch %q: %w", branch, refErr)
	}

	if _, headErr := it.CurrentBranch(dir); headErr != nil {
		return headErr
	}

	if validateErr := ref.Validate(); validateErr != nil {
		return fmt.Errorf("%w: %q", entities.ErrInvalidBranchName, branch)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree at %q: %w", dir, err)
	}
	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{
		Branch: ref,
		Create: true,
	}); checkoutErr != nil {
		return fmt.Errorf("failed to create branch %q: %w", branch, checkoutErr)
	}
	return nil
}

// Checkout switches to an existing branch.
func (it *VersionControlRepository) Checkout(dir, branch string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if _, refErr := repo.Reference(ref, false); refErr != nil {
		if errors.Is(refErr, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("%w: %q", entities.ErrUnknownBranch, branch)
		}
		return fmt.Errorf("failed to look up branch %q: %w", branch, refErr)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree at %q: %w", dir, err)
	}
	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{Branch: ref}); checkoutErr != nil {
		return fmt.Errorf("failed to checkout branch %q: %w", branch, checkoutErr)
	}
	return nil
}

// CurrentBranch returns the symbolic name HEAD points at. A detached HEAD is
// a consistency violation in this workflow, never a recoverable state.
func (it *VersionControlRepository) CurrentBranch(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD in %q: %w", dir, err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("%w: HEAD is %s", entities.ErrDetachedHead, head.Hash())
	}
	return head.Name().Short(), nil
}

func openWorktree(dir string) (*git.Worktree, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree at %q: %w", dir, err)
	}
	return worktree, nil
}
