package repositories

import (
	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// DatasetRepository loads migration entries from the PyMigBench YAML dataset.
type DatasetRepository interface {
	// LoadAll walks a dataset root and returns one CommitRef per
	// migration entry, in file order.
	LoadAll(root string) ([]entities.CommitRef, error)

	// LoadOne parses a single migration YAML file.
	LoadOne(path string) (entities.CommitRef, error)
}
