package entities

import "errors"

// Sentinel errors for the repository build pipeline. Callers branch on these
// with errors.Is; everything else is wrapped transport or filesystem failure.
var (
	// ErrUnsupportedParentTopology marks a target commit with zero or more
	// than one parent. Such entries are rejected, not approximated.
	ErrUnsupportedParentTopology = errors.New("target commit does not have exactly one parent")

	// ErrArchiveLayout marks an archive that does not contain exactly one
	// top-level directory, which GitHub archives always do.
	ErrArchiveLayout = errors.New("archive does not contain a single top-level directory")

	// ErrAlreadyInitialized marks an attempt to initialize version control
	// on a directory that already has metadata.
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrNothingToCommit marks a commit attempt over an unchanged worktree.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrBranchNameConflict marks branch creation with a name that exists.
	ErrBranchNameConflict = errors.New("branch name conflicts with an existing branch")

	// ErrDetachedHead marks a repository whose HEAD is not on a named
	// branch. The workflow never detaches intentionally, so this is fatal.
	ErrDetachedHead = errors.New("repository HEAD is detached")

	// ErrInvalidBranchName marks a name that fails git reference rules.
	ErrInvalidBranchName = errors.New("invalid branch name")

	// ErrUnknownBranch marks a checkout of a branch that does not exist.
	ErrUnknownBranch = errors.New("unknown branch")

	// ErrAlreadyPublished marks a publish rename that lost the race to an
	// existing canonical directory.
	ErrAlreadyPublished = errors.New("canonical path already exists")
)
