package repositories

// VersionControlRepository exposes the primitive, idempotent-checked
// operations the build pipeline sequences over a repository directory.
// They are deliberately low-level: the orchestrator composes them, which
// keeps the ordering invariants (no collision, no detachment) independently
// testable against a fake backend.
type VersionControlRepository interface {
	// Init creates version-control metadata with the named initial branch.
	// Fails with entities.ErrAlreadyInitialized when metadata exists.
	Init(dir, initialBranch string) error

	// CommitAll stages every file and commits with the fixed synthetic
	// identity. Fails with entities.ErrNothingToCommit on a clean tree.
	CommitAll(dir, message string) error

	// CreateBranchAndCheckout creates the branch off the current HEAD and
	// switches to it. Checks, in order: entities.ErrBranchNameConflict,
	// entities.ErrDetachedHead, entities.ErrInvalidBranchName.
	CreateBranchAndCheckout(dir, branch string) error

	// Checkout switches to an existing branch. Fails with
	// entities.ErrUnknownBranch when absent.
	Checkout(dir, branch string) error

	// CurrentBranch returns the symbolic name of HEAD, or
	// entities.ErrDetachedHead when HEAD is not on a named branch.
	CurrentBranch(dir string) (string, error)
}
