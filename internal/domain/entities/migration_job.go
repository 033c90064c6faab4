package entities

import (
	"errors"
	"fmt"
)

// MigrationJob is one fully resolved unit of work: rebuild the repository for
// Target as two branches rooted at Base. It is created after parent lookup
// and consumed exactly once.
type MigrationJob struct {
	Target      CommitRef // the migration commit
	Base        CommitRef // its sole parent
	Dir         string    // canonical output directory
	BaseBranch  string
	PatchBranch string
}

// ValidateBranchNames checks the base/patch branch pair. The patch branch
// must never collide with the base branch, otherwise the second branch
// creation is guaranteed to fail after work has already been done.
func ValidateBranchNames(baseBranch, patchBranch string) error {
	if baseBranch == "" || patchBranch == "" {
		return errors.New("base and patch branch names are required")
	}
	if baseBranch == patchBranch {
		return fmt.Errorf("patch branch %q must not equal the base branch", patchBranch)
	}
	return nil
}

// NewMigrationJob validates the branch configuration before any network or
// filesystem work happens.
func NewMigrationJob(target, base CommitRef, dir, baseBranch, patchBranch string) (MigrationJob, error) {
	if dir == "" {
		return MigrationJob{}, errors.New("migration job requires an output directory")
	}
	if err := ValidateBranchNames(baseBranch, patchBranch); err != nil {
		return MigrationJob{}, err
	}
	return MigrationJob{
		Target:      target,
		Base:        base,
		Dir:         dir,
		BaseBranch:  baseBranch,
		PatchBranch: patchBranch,
	}, nil
}
