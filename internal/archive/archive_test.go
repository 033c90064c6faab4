package archive_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/migfetch/internal/archive"
	"github.com/rios0rios0/migfetch/internal/domain/entities"
	"github.com/rios0rios0/migfetch/test/fixtures"
)

func writeTarball(t *testing.T, dir string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, "snapshot.tar.gz")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("should extract a single-root archive and return its top directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		tarball := writeTarball(t, root, fixtures.Tarball("acme-widgets-c1", map[string]string{
			"README.md":   "hello",
			"src/main.py": "print('hi')",
		}))

		// when
		extracted, err := archive.Extract(tarball, root)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "acme-widgets-c1"), extracted)

		content, readErr := os.ReadFile(filepath.Join(extracted, "src", "main.py"))
		require.NoError(t, readErr)
		assert.Equal(t, "print('hi')", string(content))
	})

	t.Run("should delete the tarball after successful extraction", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		tarball := writeTarball(t, root, fixtures.Tarball("top", map[string]string{"a.txt": "a"}))

		// when
		_, err := archive.Extract(tarball, root)

		// then
		require.NoError(t, err)
		_, statErr := os.Stat(tarball)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("should reject an archive with more than one top-level directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		tarball := writeTarball(t, root, fixtures.TarballMultiRoot("first", "second"))

		// when
		_, err := archive.Extract(tarball, root)

		// then
		require.ErrorIs(t, err, entities.ErrArchiveLayout)
	})

	t.Run("should accept an archive holding only the top directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		tarball := writeTarball(t, root, fixtures.Tarball("empty-snapshot", nil))

		// when
		extracted, err := archive.Extract(tarball, root)

		// then
		require.NoError(t, err)
		assert.DirExists(t, extracted)
	})

	t.Run("should reject an archive with no entries at all", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		tw := tar.NewWriter(gz)
		require.NoError(t, tw.Close())
		require.NoError(t, gz.Close())
		tarball := writeTarball(t, root, buf.Bytes())

		// when
		_, err := archive.Extract(tarball, root)

		// then
		require.ErrorIs(t, err, entities.ErrArchiveLayout)
	})

	t.Run("should delete the tarball even when extraction fails", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		tarball := writeTarball(t, root, []byte("not a gzip stream"))

		// when
		_, err := archive.Extract(tarball, root)

		// then
		require.Error(t, err)
		_, statErr := os.Stat(tarball)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	t.Run("should replace the worktree contents while preserving the metadata directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		target := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(target, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, ".git", "HEAD"), []byte("ref: refs/heads/main"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(target, "old.txt"), []byte("old"), 0o644))

		extracted := filepath.Join(root, "incoming")
		require.NoError(t, os.MkdirAll(filepath.Join(extracted, "src"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(extracted, "new.txt"), []byte("new"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(extracted, "src", "main.py"), []byte("pass"), 0o644))

		// when
		err := archive.Overlay(extracted, target, ".git")

		// then
		require.NoError(t, err)

		head, readErr := os.ReadFile(filepath.Join(target, ".git", "HEAD"))
		require.NoError(t, readErr)
		assert.Equal(t, "ref: refs/heads/main", string(head))

		assert.NoFileExists(t, filepath.Join(target, "old.txt"))
		assert.FileExists(t, filepath.Join(target, "new.txt"))
		assert.FileExists(t, filepath.Join(target, "src", "main.py"))
	})

	t.Run("should remove the extracted root afterwards", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		target := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(target, 0o755))
		extracted := filepath.Join(root, "incoming")
		require.NoError(t, os.MkdirAll(extracted, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(extracted, "a.txt"), []byte("a"), 0o644))

		// when
		err := archive.Overlay(extracted, target, ".git")

		// then
		require.NoError(t, err)
		assert.NoDirExists(t, extracted)
	})

	t.Run("should never let an incoming entry replace a preserved name", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		target := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(target, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, ".git", "config"), []byte("real"), 0o644))

		extracted := filepath.Join(root, "incoming")
		require.NoError(t, os.MkdirAll(filepath.Join(extracted, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(extracted, ".git", "config"), []byte("fake"), 0o644))

		// when
		err := archive.Overlay(extracted, target, ".git")

		// then
		require.NoError(t, err)
		config, readErr := os.ReadFile(filepath.Join(target, ".git", "config"))
		require.NoError(t, readErr)
		assert.Equal(t, "real", string(config))
		assert.NoDirExists(t, extracted)
	})
}
