// Package github implements the archive/metadata provider on the GitHub API.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

const archiveRedirects = 3

// GitHubProviderRepository implements repositories.ProviderRepository against
// api.github.com: commit metadata for parent lookup and the tarball endpoint
// for point-in-time source archives.
type GitHubProviderRepository struct {
	client *gh.Client
	http   *http.Client
}

// NewProviderRepository creates a GitHub provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	client := gh.NewClient(nil).WithAuthToken(token)
	return &GitHubProviderRepository{
		client: client,
		http:   client.Client(),
	}
}

var _ repositories.ProviderRepository = (*GitHubProviderRepository)(nil)

// CommitParents returns the parent count of the commit and the SHA of its
// first parent.
func (it *GitHubProviderRepository) CommitParents(
	ctx context.Context,
	ref entities.CommitRef,
) (int, string, error) {
	logger.Debugf("Fetching parent metadata for %s", ref)

	commit, _, err := it.client.Repositories.GetCommit(
		ctx, ref.Owner(), ref.Name(), ref.SHA, nil,
	)
	if err != nil {
		return 0, "", fmt.Errorf("failed to get commit %s: %w", ref, err)
	}

	parents := commit.Parents
	if len(parents) == 0 {
		return 0, "", nil
	}
	return len(parents), parents[0].GetSHA(), nil
}

// DownloadArchive streams the commit's tarball into a temporary file under
// destDir and returns its path. The caller owns the file afterwards.
func (it *GitHubProviderRepository) DownloadArchive(
	ctx context.Context,
	ref entities.CommitRef,
	destDir string,
) (string, error) {
	logger.Debugf("Downloading archive for %s", ref)

	url, _, err := it.client.Repositories.GetArchiveLink(
		ctx, ref.Owner(), ref.Name(), gh.Tarball,
		&gh.RepositoryContentGetOptions{Ref: ref.SHA},
		archiveRedirects,
	)
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive link for %s: %w", ref, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build archive request for %s: %w", ref, err)
	}

	resp, err := it.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download archive for %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"failed to download archive for %s: unexpected status %s", ref, resp.Status)
	}

	tarball, err := os.CreateTemp(destDir, ref.FolderName()+"-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("failed to create archive file for %s: %w", ref, err)
	}

	if _, copyErr := io.Copy(tarball, resp.Body); copyErr != nil {
		_ = tarball.Close()
		_ = os.Remove(tarball.Name())
		return "", fmt.Errorf("failed to write archive for %s: %w", ref, copyErr)
	}
	if closeErr := tarball.Close(); closeErr != nil {
		_ = os.Remove(tarball.Name())
		return "", fmt.Errorf("failed to close archive for %s: %w", ref, closeErr)
	}

	return tarball.Name(), nil
}
