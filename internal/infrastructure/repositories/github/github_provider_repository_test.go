package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// newTestProvider points the provider at a local fake of the GitHub API.
func newTestProvider(t *testing.T, mux *http.ServeMux) (*GitHubProviderRepository, string) {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return &GitHubProviderRepository{client: client, http: client.Client()}, server.URL
}

func TestGitHubProviderRepository_CommitParents(t *testing.T) {
	t.Parallel()

	ref := entities.CommitRef{Repo: "acme/widgets", SHA: "c2"}

	t.Run("should report the parent count and first parent sha", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/widgets/commits/c2", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"sha": "c2", "parents": [{"sha": "c1"}]}`))
		})
		provider, _ := newTestProvider(t, mux)

		// when
		count, parentSHA, err := provider.CommitParents(context.Background(), ref)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "c1", parentSHA)
	})

	t.Run("should report zero parents for a root commit", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/widgets/commits/c2", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"sha": "c2", "parents": []}`))
		})
		provider, _ := newTestProvider(t, mux)

		// when
		count, parentSHA, err := provider.CommitParents(context.Background(), ref)

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, parentSHA)
	})

	t.Run("should report every parent of a merge commit", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/widgets/commits/c2", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"sha": "c2", "parents": [{"sha": "c1"}, {"sha": "c0"}]}`))
		})
		provider, _ := newTestProvider(t, mux)

		// when
		count, parentSHA, err := provider.CommitParents(context.Background(), ref)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, "c1", parentSHA)
	})

	t.Run("should fail on an unknown commit", func(t *testing.T) {
		t.Parallel()

		// given
		provider, _ := newTestProvider(t, http.NewServeMux())

		// when
		_, _, err := provider.CommitParents(context.Background(), ref)

		// then
		assert.Error(t, err)
	})
}

func TestGitHubProviderRepository_DownloadArchive(t *testing.T) {
	t.Parallel()

	ref := entities.CommitRef{Repo: "acme/widgets", SHA: "c2"}

	t.Run("should follow the archive link and stream the tarball to disk", func(t *testing.T) {
		t.Parallel()

		// given
		payload := []byte("tarball-bytes")
		mux := http.NewServeMux()
		var downloadURL string
		mux.HandleFunc("/repos/acme/widgets/tarball/c2", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Location", downloadURL)
			w.WriteHeader(http.StatusFound)
		})
		mux.HandleFunc("/archive/c2.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(payload)
		})
		provider, serverURL := newTestProvider(t, mux)
		downloadURL = serverURL + "/archive/c2.tar.gz"
		destDir := t.TempDir()

		// when
		tarball, err := provider.DownloadArchive(context.Background(), ref, destDir)

		// then
		require.NoError(t, err)
		assert.Equal(t, destDir, filepath.Dir(tarball))
		content, readErr := os.ReadFile(tarball)
		require.NoError(t, readErr)
		assert.Equal(t, payload, content)
	})

	t.Run("should fail when the archive link cannot be resolved", func(t *testing.T) {
		t.Parallel()

		// given
		provider, _ := newTestProvider(t, http.NewServeMux())

		// when
		_, err := provider.DownloadArchive(context.Background(), ref, t.TempDir())

		// then
		assert.Error(t, err)
	})

	t.Run("should fail when the download itself errors", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		var downloadURL string
		mux.HandleFunc("/repos/acme/widgets/tarball/c2", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Location", downloadURL)
			w.WriteHeader(http.StatusFound)
		})
		mux.HandleFunc("/archive/c2.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		})
		provider, serverURL := newTestProvider(t, mux)
		downloadURL = serverURL + "/archive/c2.tar.gz"

		// when
		_, err := provider.DownloadArchive(context.Background(), ref, t.TempDir())

		// then
		assert.Error(t, err)
	})
}
