//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/migfetch/internal/domain/commands"
	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
	"github.com/rios0rios0/migfetch/test/domain/commanddoubles"
	"github.com/rios0rios0/migfetch/test/infrastructure/repositorydoubles"
)

func dummyFactory(_ string) repositories.ProviderRepository {
	return &repositorydoubles.DummyProviderRepository{}
}

func datasetRefs(count int) []entities.CommitRef {
	refs := make([]entities.CommitRef, count)
	for index := range refs {
		refs[index] = entities.CommitRef{Repo: "acme/widgets", SHA: fmt.Sprintf("c%03d", index)}
	}
	return refs
}

func TestDownloadAllCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should build every dataset entry and tally the outcomes", func(t *testing.T) {
		t.Parallel()

		// given
		dataset := &repositorydoubles.StubDatasetRepository{Refs: datasetRefs(12)}
		build := &commanddoubles.SpyBuildCommand{
			Statuses: map[string]entities.BuildStatus{
				"c000": entities.StatusSkipped,
				"c001": entities.StatusFailed,
			},
			Err: errors.New("archive unavailable"),
		}
		command := commands.NewDownloadAllCommand(dataset, build, dummyFactory)
		settings := newSettings(t)

		// when
		summary, err := command.Execute(context.Background(), settings, commands.DownloadAllOptions{
			DatasetRoot: "/data/pymigbench",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 10, summary.Built)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 1, summary.Failed)
		assert.Len(t, build.Calls, 12)
		assert.Equal(t, []string{"/data/pymigbench"}, dataset.LoadedRoots)
	})

	t.Run("should truncate the dataset to the requested maximum", func(t *testing.T) {
		t.Parallel()

		// given
		dataset := &repositorydoubles.StubDatasetRepository{Refs: datasetRefs(30)}
		build := &commanddoubles.SpyBuildCommand{}
		command := commands.NewDownloadAllCommand(dataset, build, dummyFactory)

		// when
		summary, err := command.Execute(context.Background(), newSettings(t), commands.DownloadAllOptions{
			DatasetRoot: "/data/pymigbench",
			MaxCount:    5,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 5, summary.Total())
		assert.Len(t, build.Calls, 5)
	})

	t.Run("should ignore a maximum larger than the dataset", func(t *testing.T) {
		t.Parallel()

		// given
		dataset := &repositorydoubles.StubDatasetRepository{Refs: datasetRefs(3)}
		build := &commanddoubles.SpyBuildCommand{}
		command := commands.NewDownloadAllCommand(dataset, build, dummyFactory)

		// when
		summary, err := command.Execute(context.Background(), newSettings(t), commands.DownloadAllOptions{
			DatasetRoot: "/data/pymigbench",
			MaxCount:    100,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Total())
	})

	t.Run("should propagate a dataset loading failure without building anything", func(t *testing.T) {
		t.Parallel()

		// given
		dataset := &repositorydoubles.StubDatasetRepository{
			LoadAllErr: errors.New("dataset root not found"),
		}
		build := &commanddoubles.SpyBuildCommand{}
		command := commands.NewDownloadAllCommand(dataset, build, dummyFactory)

		// when
		_, err := command.Execute(context.Background(), newSettings(t), commands.DownloadAllOptions{
			DatasetRoot: "/data/missing",
		})

		// then
		require.Error(t, err)
		assert.Empty(t, build.Calls)
	})

	t.Run("should hand the configured token to the provider factory", func(t *testing.T) {
		t.Parallel()

		// given
		var seenToken string
		factory := func(token string) repositories.ProviderRepository {
			seenToken = token
			return &repositorydoubles.DummyProviderRepository{}
		}
		dataset := &repositorydoubles.StubDatasetRepository{Refs: datasetRefs(1)}
		command := commands.NewDownloadAllCommand(dataset, &commanddoubles.SpyBuildCommand{}, factory)
		settings := newSettings(t)
		settings.GitHub.Token = "ghp_expected"

		// when
		_, err := command.Execute(context.Background(), settings, commands.DownloadAllOptions{
			DatasetRoot: "/data/pymigbench",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "ghp_expected", seenToken)
	})
}
