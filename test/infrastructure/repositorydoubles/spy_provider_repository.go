//go:build integration || unit || test

// Package repositorydoubles provides hand-written test doubles (spies, stubs,
// dummies) for the repository interfaces.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/internal/domain/repositories"
)

// ParentInfo is the canned parent metadata for one commit.
type ParentInfo struct {
	Count    int
	FirstSHA string
}

// SpyProviderRepository implements repositories.ProviderRepository as a
// configurable spy serving canned parent metadata and tarball bytes. It is
// safe for concurrent use so pool tests can share one instance.
type SpyProviderRepository struct {
	// --- canned responses, keyed by commit SHA ---
	Parents  map[string]ParentInfo
	Archives map[string][]byte

	// --- injected failures ---
	ParentsErr     error
	DownloadErr    error
	DownloadErrFor string // when set, DownloadErr applies only to this SHA

	// --- call tracking ---
	ParentCalls   []entities.CommitRef
	DownloadCalls []entities.CommitRef

	mu sync.Mutex
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (it *SpyProviderRepository) CommitParents(
	_ context.Context, ref entities.CommitRef,
) (int, string, error) {
	it.mu.Lock()
	it.ParentCalls = append(it.ParentCalls, ref)
	it.mu.Unlock()

	if it.ParentsErr != nil {
		return 0, "", it.ParentsErr
	}
	info, ok := it.Parents[ref.SHA]
	if !ok {
		return 0, "", fmt.Errorf("commit not found: %s", ref)
	}
	return info.Count, info.FirstSHA, nil
}

func (it *SpyProviderRepository) DownloadArchive(
	_ context.Context, ref entities.CommitRef, destDir string,
) (string, error) {
	it.mu.Lock()
	it.DownloadCalls = append(it.DownloadCalls, ref)
	it.mu.Unlock()

	if it.DownloadErr != nil && (it.DownloadErrFor == "" || it.DownloadErrFor == ref.SHA) {
		return "", it.DownloadErr
	}

	data, ok := it.Archives[ref.SHA]
	if !ok {
		return "", fmt.Errorf("archive not found: %s", ref)
	}

	tarball, err := os.CreateTemp(destDir, ref.FolderName()+"-*.tar.gz")
	if err != nil {
		return "", err
	}
	if _, writeErr := tarball.Write(data); writeErr != nil {
		_ = tarball.Close()
		return "", writeErr
	}
	if closeErr := tarball.Close(); closeErr != nil {
		return "", closeErr
	}
	return tarball.Name(), nil
}

// DummyProviderRepository is a no-op implementation of repositories.ProviderRepository.
type DummyProviderRepository struct{}

var _ repositories.ProviderRepository = (*DummyProviderRepository)(nil)

func (it *DummyProviderRepository) CommitParents(
	_ context.Context, _ entities.CommitRef,
) (int, string, error) {
	return 0, "", nil
}

func (it *DummyProviderRepository) DownloadArchive(
	_ context.Context, _ entities.CommitRef, _ string,
) (string, error) {
	return "", nil
}
