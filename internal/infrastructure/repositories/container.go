package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/migfetch/internal/domain/repositories"
	"github.com/rios0rios0/migfetch/internal/infrastructure/repositories/dataset"
	"github.com/rios0rios0/migfetch/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/migfetch/internal/infrastructure/repositories/gogit"
)

// ProviderFactory builds a ProviderRepository for an auth token. The token
// only becomes known once settings are loaded, so commands receive a factory
// rather than a ready provider.
type ProviderFactory func(token string) domainRepos.ProviderRepository

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() ProviderFactory {
		return github.NewProviderRepository
	}); err != nil {
		return err
	}
	if err := container.Provide(gogit.NewVersionControlRepository); err != nil {
		return err
	}
	if err := container.Provide(dataset.NewDatasetRepository); err != nil {
		return err
	}
	return nil
}
