//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// StubVersionControlRepository implements repositories.VersionControlRepository
// with configurable per-operation errors and an ordered record of the
// operations issued, so sequencing tests can assert the exact order.
type StubVersionControlRepository struct {
	InitErr          error
	CommitAllErr     error
	CreateBranchErr  error
	CheckoutErr      error
	CurrentName      string
	CurrentBranchErr error

	Ops []string
}

var _ repositories.VersionControlRepository = (*StubVersionControlRepository)(nil)

func (it *StubVersionControlRepository) Init(_, initialBranch string) error {
	it.Ops = append(it.Ops, "init:"+initialBranch)
	return it.InitErr
}

func (it *StubVersionControlRepository) CommitAll(_, message string) error {
	it.Ops = append(it.Ops, "commit:"+message)
	return it.CommitAllErr
}

func (it *StubVersionControlRepository) CreateBranchAndCheckout(_, branch string) error {
	it.Ops = append(it.Ops, "create-branch:"+branch)
	return it.CreateBranchErr
}

func (it *StubVersionControlRepository) Checkout(_, branch string) error {
	it.Ops = append(it.Ops, "checkout:"+branch)
	return it.CheckoutErr
}

func (it *StubVersionControlRepository) CurrentBranch(_ string) (string, error) {
	it.Ops = append(it.Ops, "current-branch")
	return it.CurrentName, it.CurrentBranchErr
}
