// Package fixtures builds in-memory GitHub-style source archives for tests.
package fixtures

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"sort"
)

// Tarball builds a gzipped tarball whose entries all live under a single
// top-level directory, the shape GitHub's archive endpoint produces.
func Tarball(topDir string, files map[string]string) []byte {
	entries := map[string]string{topDir + "/": ""}
	for name, content := range files {
		entries[topDir+"/"+name] = content
	}
	return tarball(entries)
}

// TarballMultiRoot builds a structurally invalid archive with entries under
// two top-level directories.
func TarballMultiRoot(firstDir, secondDir string) []byte {
	return tarball(map[string]string{
		firstDir + "/":       "",
		firstDir + "/a.txt":  "a",
		secondDir + "/":      "",
		secondDir + "/b.txt": "b",
	})
}

func tarball(entries map[string]string) []byte {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, name := range names {
		content := entries[name]
		header := &tar.Header{Name: name}
		if name[len(name)-1] == '/' {
			header.Typeflag = tar.TypeDir
			header.Mode = 0o755
		} else {
			header.Typeflag = tar.TypeReg
			header.Mode = 0o644
			header.Size = int64(len(content))
		}
		if err := tw.WriteHeader(header); err != nil {
			panic(err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(content)); err != nil {
				panic(err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		panic(err)
	}
	if err := gz.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
