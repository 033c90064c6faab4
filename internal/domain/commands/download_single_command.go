package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/migfetch/internal/infrastructure/repositories"
)

// DownloadSingle is the interface for building one dataset entry.
type DownloadSingle interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		yamlFile string,
	) (entities.BuildResult, error)
}

// DownloadSingleCommand builds the repository for a single migration YAML
// file end to end.
type DownloadSingleCommand struct {
	dataset repositories.DatasetRepository
	build   Build
	factory infraRepos.ProviderFactory
}

// NewDownloadSingleCommand creates a DownloadSingleCommand.
func NewDownloadSingleCommand(
	dataset repositories.DatasetRepository,
	build Build,
	factory infraRepos.ProviderFactory,
) *DownloadSingleCommand {
	return &DownloadSingleCommand{
		dataset: dataset,
		build:   build,
		factory: factory,
	}
}

// Execute parses the YAML file and runs the build pipeline for its entry.
func (it *DownloadSingleCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	yamlFile string,
) (entities.BuildResult, error) {
	ref, err := it.dataset.LoadOne(yamlFile)
	if err != nil {
		return entities.BuildResult{}, err
	}

	provider := it.factory(settings.GitHub.Token)
	result := it.build.Execute(ctx, provider, ref, settings)
	logger.Infof("Result for %s: %s", result.Ref, result.Status)
	return result, nil
}
