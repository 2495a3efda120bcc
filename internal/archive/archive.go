// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package archive opens the zip-style containers used by the model
// interchange formats: requirements archives with a single fixed-name model
// entry, and code generation archives whose sources are extracted to a
// reusable cache directory next to the archive.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ModelEntryName is the fixed path of the model definition inside a
// requirements archive.
const ModelEntryName = "com.nomagic.magicdraw.uml_model.model"

var (
	// ErrBadArchive indicates the container is missing or not a readable zip.
	ErrBadArchive = errors.New("unreadable archive")
	// ErrMissingEntry indicates the expected payload entry is absent.
	ErrMissingEntry = errors.New("model entry not found in archive")
)

// ReadEntry returns the raw bytes of the named entry inside the zip
// container at path.
func ReadEntry(path, entry string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadArchive, path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entry {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrBadArchive, path, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrBadArchive, path, err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrMissingEntry, entry, path)
}

// ReadModelEntry returns the model definition bytes of a requirements
// archive.
func ReadModelEntry(path string) ([]byte, error) {
	return ReadEntry(path, ModelEntryName)
}

// CacheDir returns the extraction cache directory for an archive:
// <dir>/<stem>_extracted, next to the archive itself.
func CacheDir(archivePath string) string {
	dir := filepath.Dir(archivePath)
	stem := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	return filepath.Join(dir, stem+"_extracted")
}

// ExtractSources extracts the archive into its cache directory and returns a
// map of relative path to content for every file whose extension matches.
// Extraction is idempotent: when the cache directory already yields at least
// one matching file it is reused as is; an empty cache is discarded and
// re-extracted.
func ExtractSources(archivePath string, exts ...string) (map[string]string, error) {
	cache := CacheDir(archivePath)

	if _, err := os.Stat(cache); err == nil {
		files, err := collectFiles(cache, exts)
		if err == nil && len(files) > 0 {
			return files, nil
		}
		// Empty or unreadable cache: re-extract.
		if err := os.RemoveAll(cache); err != nil {
			return nil, fmt.Errorf("resetting cache %s: %w", cache, err)
		}
	}

	if err := extractAll(archivePath, cache); err != nil {
		return nil, err
	}
	return collectFiles(cache, exts)
}

// extractAll unpacks every entry of the zip at archivePath into destDir.
func extractAll(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadArchive, archivePath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			// Entry escapes the destination; skip it.
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := writeEntry(f, target); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBadArchive, archivePath, err)
		}
	}
	return nil
}

func writeEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// collectFiles walks dir and returns relative path -> content for files
// matching any of the extensions (all files when exts is empty), in sorted
// path order.
func collectFiles(dir string, exts []string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if len(exts) > 0 && !hasExt(path, exts) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func hasExt(path string, exts []string) bool {
	e := filepath.Ext(path)
	for _, want := range exts {
		if e == want {
			return true
		}
	}
	return false
}

// SortedPaths returns the keys of a file map in lexical order, for
// deterministic per-file processing.
func SortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
