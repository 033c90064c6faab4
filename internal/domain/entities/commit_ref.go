package entities

import (
	"fmt"
	"strings"
)

// CommitRef identifies a single commit in a remote repository. Two refs with
// the same repository and SHA denote the same remote snapshot.
type CommitRef struct {
	Repo string // "owner/name"
	SHA  string // opaque commit identifier
}

// NewCommitRef creates a CommitRef, validating that both fields are present
// and that the repository identifier has the "owner/name" shape.
func NewCommitRef(repo, sha string) (CommitRef, error) {
	if repo == "" || sha == "" {
		return CommitRef{}, fmt.Errorf("commit ref requires repo and sha, got repo=%q sha=%q", repo, sha)
	}
	if strings.Count(repo, "/") != 1 {
		return CommitRef{}, fmt.Errorf("repository %q is not in owner/name form", repo)
	}
	return CommitRef{Repo: repo, SHA: sha}, nil
}

// Owner returns the owner half of the repository identifier.
func (it CommitRef) Owner() string {
	owner, _, _ := strings.Cut(it.Repo, "/")
	return owner
}

// Name returns the repository-name half of the repository identifier.
func (it CommitRef) Name() string {
	_, name, _ := strings.Cut(it.Repo, "/")
	return name
}

// RepoSafe returns the repository identifier with path separators replaced,
// safe for use in filesystem names.
func (it CommitRef) RepoSafe() string {
	return strings.ReplaceAll(it.Repo, "/", "_")
}

// FolderName returns the canonical directory name for this commit. It is
// unique across the whole dataset.
func (it CommitRef) FolderName() string {
	return fmt.Sprintf("%s__%s", it.RepoSafe(), it.SHA)
}

func (it CommitRef) String() string {
	return it.Repo + ":" + it.SHA
}
