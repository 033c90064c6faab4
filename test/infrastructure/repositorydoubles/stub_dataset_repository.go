//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// StubDatasetRepository implements repositories.DatasetRepository with canned
// entries.
type StubDatasetRepository struct {
	Refs       []entities.CommitRef
	LoadAllErr error
	OneRef     entities.CommitRef
	LoadOneErr error

	LoadedRoots []string
	LoadedFiles []string
}

var _ repositories.DatasetRepository = (*StubDatasetRepository)(nil)

func (it *StubDatasetRepository) LoadAll(root string) ([]entities.CommitRef, error) {
	it.LoadedRoots = append(it.LoadedRoots, root)
	return it.Refs, it.LoadAllErr
}

func (it *StubDatasetRepository) LoadOne(path string) (entities.CommitRef, error) {
	it.LoadedFiles = append(it.LoadedFiles, path)
	return it.OneRef, it.LoadOneErr
}
