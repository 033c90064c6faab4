// Package dataset loads migration entries from PyMigBench YAML files.
package dataset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// YamlDatasetRepository implements repositories.DatasetRepository over a
// directory of PyMigBench migration YAML files.
type YamlDatasetRepository struct{}

// NewDatasetRepository creates the YAML dataset loader.
func NewDatasetRepository() repositories.DatasetRepository {
	return &YamlDatasetRepository{}
}

var _ repositories.DatasetRepository = (*YamlDatasetRepository)(nil)

// migrationEntry mirrors the fields of a PyMigBench migration record that
// this tool consumes; everything else in the file is ignored.
type migrationEntry struct {
	Repo   string `yaml:"repo"`
	Commit string `yaml:"commit"`
}

// LoadAll walks root recursively and parses every .yaml/.yml file into a
// CommitRef, in lexical walk order.
func (it *YamlDatasetRepository) LoadAll(root string) ([]entities.CommitRef, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dataset root %q not found: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %q is not a directory", root)
	}

	var refs []entities.CommitRef
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isYamlFile(path) {
			return nil
		}

		ref, loadErr := it.LoadOne(path)
		if loadErr != nil {
			return loadErr
		}
		refs = append(refs, ref)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to load dataset from %q: %w", root, walkErr)
	}

	logger.Infof("Loaded %d migration entries from %q", len(refs), root)
	return refs, nil
}

// LoadOne parses a single migration YAML file into a CommitRef.
func (it *YamlDatasetRepository) LoadOne(path string) (entities.CommitRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.CommitRef{}, fmt.Errorf("failed to read dataset file %q: %w", path, err)
	}

	var entry migrationEntry
	if unmarshalErr := yaml.Unmarshal(data, &entry); unmarshalErr != nil {
		return entities.CommitRef{}, fmt.Errorf(
			"failed to parse dataset file %q: %w", path, unmarshalErr)
	}

	ref, err := entities.NewCommitRef(entry.Repo, entry.Commit)
	if err != nil {
		return entities.CommitRef{}, fmt.Errorf("invalid dataset file %q: %w", path, err)
	}
	return ref, nil
}

func isYamlFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
