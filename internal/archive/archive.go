// Package archive materializes GitHub source archives on disk: extracting a
// tarball into a staging tree and overlaying a tree onto an existing worktree
// while preserving the version-control metadata directory.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// Extract unpacks a gzipped tarball into root and returns the path of the
// single top-level directory the archive contains. GitHub archives always
// have exactly one top-level folder; anything else is corrupt input and
// fails with entities.ErrArchiveLayout. The tarball file is deleted after
// both successful and failed extraction so no temp files leak.
func Extract(tarball, root string) (string, error) {
	defer func() {
		_ = os.Remove(tarball)
	}()

	file, err := os.Open(tarball)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %q: %w", tarball, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to read archive %q: %w", tarball, err)
	}
	defer gz.Close()

	topLevel := ""
	reader := tar.NewReader(gz)
	for {
		header, readErr := reader.Next()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("failed to read archive %q: %w", tarball, readErr)
		}

		name := strings.TrimPrefix(header.Name, "./")
		if name == "" || name == "." {
			continue
		}

		top, _, _ := strings.Cut(name, "/")
		if topLevel == "" {
			topLevel = top
		} else if top != topLevel {
			return "", fmt.Errorf("%w: found %q and %q", entities.ErrArchiveLayout, topLevel, top)
		}

		if writeErr := writeEntry(root, name, header, reader); writeErr != nil {
			return "", writeErr
		}
	}

	if topLevel == "" {
		return "", fmt.Errorf("%w: archive is empty", entities.ErrArchiveLayout)
	}

	extracted, err := securejoin.SecureJoin(root, topLevel)
	if err != nil {
		return "", fmt.Errorf("failed to resolve extracted tree: %w", err)
	}
	info, err := os.Stat(extracted)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: top-level entry %q is not a directory", entities.ErrArchiveLayout, topLevel)
	}
	return extracted, nil
}

// writeEntry writes one tar entry under root. Entry names are joined with
// SecureJoin so hostile paths cannot escape the extraction root.
func writeEntry(root, name string, header *tar.Header, reader io.Reader) error {
	path, err := securejoin.SecureJoin(root, name)
	if err != nil {
		return fmt.Errorf("refusing to extract entry %q: %w", name, err)
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if mkdirErr := os.MkdirAll(path, os.FileMode(header.Mode)|0o700); mkdirErr != nil {
			return fmt.Errorf("failed to create directory %q: %w", path, mkdirErr)
		}
	case tar.TypeReg:
		if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create directory for %q: %w", path, mkdirErr)
		}
		out, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
		if openErr != nil {
			return fmt.Errorf("failed to create file %q: %w", path, openErr)
		}
		if _, copyErr := io.Copy(out, reader); copyErr != nil {
			_ = out.Close()
			return fmt.Errorf("failed to write file %q: %w", path, copyErr)
		}
		if closeErr := out.Close(); closeErr != nil {
			return fmt.Errorf("failed to close file %q: %w", path, closeErr)
		}
	case tar.TypeSymlink:
		if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create directory for %q: %w", path, mkdirErr)
		}
		if linkErr := os.Symlink(header.Linkname, path); linkErr != nil && !os.IsExist(linkErr) {
			return fmt.Errorf("failed to create symlink %q: %w", path, linkErr)
		}
	default:
		// Hard links, devices and the like do not occur in GitHub
		// source archives; skip them instead of failing the job.
	}
	return nil
}

// Overlay replaces the children of target with the children of extracted,
// keeping every child of target whose name is listed in preserve. The
// extracted root is removed afterwards. This is an allow-list over directory
// entries, not delete-everything-then-copy, so the preserved subtree is
// never touched.
func Overlay(extracted, target string, preserve ...string) error {
	keep := make(map[string]bool, len(preserve))
	for _, name := range preserve {
		keep[name] = true
	}

	existing, err := os.ReadDir(target)
	if err != nil {
		return fmt.Errorf("failed to list worktree %q: %w", target, err)
	}
	for _, entry := range existing {
		if keep[entry.Name()] {
			continue
		}
		if removeErr := os.RemoveAll(filepath.Join(target, entry.Name())); removeErr != nil {
			return fmt.Errorf("failed to remove %q: %w", entry.Name(), removeErr)
		}
	}

	incoming, err := os.ReadDir(extracted)
	if err != nil {
		return fmt.Errorf("failed to list extracted tree %q: %w", extracted, err)
	}
	for _, entry := range incoming {
		if keep[entry.Name()] {
			// An archive must never replace the preserved metadata.
			continue
		}
		src := filepath.Join(extracted, entry.Name())
		dst := filepath.Join(target, entry.Name())
		if renameErr := os.Rename(src, dst); renameErr != nil {
			return fmt.Errorf("failed to move %q into worktree: %w", entry.Name(), renameErr)
		}
	}

	// Anything still inside the extracted root is skipped content, such as
	// an archive-supplied entry shadowing a preserved name. Discard it all.
	if removeErr := os.RemoveAll(extracted); removeErr != nil {
		return fmt.Errorf("failed to discard extracted root %q: %w", extracted, removeErr)
	}
	return nil
}
