package repositories

import (
	"context"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// ProviderRepository abstracts the archive/metadata source. The pipeline
// needs only two things from it: how many parents a commit has, and a
// point-in-time source archive of a commit's tree. Full clones are never
// used because only two specific trees are needed.
type ProviderRepository interface {
	// CommitParents returns the parent count of the commit and the SHA of
	// its first parent ("" when the commit has no parents).
	CommitParents(ctx context.Context, ref entities.CommitRef) (int, string, error)

	// DownloadArchive fetches the commit's source tree as a gzipped
	// tarball into a temporary file under destDir and returns its path.
	// The archive contains a single top-level directory with all files.
	DownloadArchive(ctx context.Context, ref entities.CommitRef, destDir string) (string, error)
}
