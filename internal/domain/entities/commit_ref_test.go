package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

func TestNewCommitRef(t *testing.T) {
	t.Parallel()

	t.Run("should create a ref from owner/name and sha", func(t *testing.T) {
		t.Parallel()

		// given
		repo, sha := "acme/widgets", "c2"

		// when
		ref, err := entities.NewCommitRef(repo, sha)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme", ref.Owner())
		assert.Equal(t, "widgets", ref.Name())
	})

	t.Run("should reject an empty repository", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewCommitRef("", "c2")

		// then
		assert.Error(t, err)
	})

	t.Run("should reject an empty sha", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewCommitRef("acme/widgets", "")

		// then
		assert.Error(t, err)
	})

	t.Run("should reject a repository without owner", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewCommitRef("widgets", "c2")

		// then
		assert.Error(t, err)
	})
}

func TestCommitRefNaming(t *testing.T) {
	t.Parallel()

	t.Run("should derive a filesystem-safe repo name", func(t *testing.T) {
		t.Parallel()

		// given
		ref := entities.CommitRef{Repo: "acme/widgets", SHA: "c2"}

		// then
		assert.Equal(t, "acme_widgets", ref.RepoSafe())
	})

	t.Run("should derive the canonical folder name", func(t *testing.T) {
		t.Parallel()

		// given
		ref := entities.CommitRef{Repo: "acme/widgets", SHA: "c2"}

		// then
		assert.Equal(t, "acme_widgets__c2", ref.FolderName())
	})

	t.Run("should compare equal by both fields", func(t *testing.T) {
		t.Parallel()

		// given
		left := entities.CommitRef{Repo: "acme/widgets", SHA: "c2"}
		right := entities.CommitRef{Repo: "acme/widgets", SHA: "c2"}
		other := entities.CommitRef{Repo: "acme/widgets", SHA: "c3"}

		// then
		assert.Equal(t, left, right)
		assert.NotEqual(t, left, other)
	})
}
