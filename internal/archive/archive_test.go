// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip file at path with the given entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestReadModelEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.mdzip")
	writeZip(t, path, map[string]string{
		ModelEntryName: "<xmi/>",
		"other.txt":    "ignored",
	})

	data, err := ReadModelEntry(path)
	require.NoError(t, err)
	assert.Equal(t, "<xmi/>", string(data))
}

func TestReadModelEntryMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.mdzip")
	writeZip(t, path, map[string]string{"other.txt": "no model here"})

	_, err := ReadModelEntry(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingEntry)
}

func TestReadModelEntryCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.mdzip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ReadModelEntry(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadArchive)
}

func TestExtractSourcesFiltersAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gen.slxc")
	writeZip(t, path, map[string]string{
		"rtw/model.c":      "int main(void) { return 0; }\n",
		"rtw/model.h":      "#pragma once\n",
		"rtw/sub/subsys.c": "/* sub */\n",
		"rtw/readme.txt":   "notes",
	})

	files, err := ExtractSources(path, ".c")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, "rtw/model.c")
	assert.Contains(t, files, "rtw/sub/subsys.c")

	// Second call reuses the cache directory: drop a sentinel into it and
	// verify it survives.
	sentinel := filepath.Join(CacheDir(path), "rtw", "sentinel.c")
	require.NoError(t, os.WriteFile(sentinel, []byte("/* kept */"), 0o644))

	again, err := ExtractSources(path, ".c")
	require.NoError(t, err)
	assert.Contains(t, again, "rtw/sentinel.c")
}

func TestExtractSourcesReextractsEmptyCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gen.slxc")
	writeZip(t, path, map[string]string{"model.c": "/* body */\n"})

	// Pre-create an empty cache: it yields no sources and must be replaced.
	require.NoError(t, os.MkdirAll(CacheDir(path), 0o755))

	files, err := ExtractSources(path, ".c")
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Contains(t, files, "model.c")
}

func TestSortedPaths(t *testing.T) {
	files := map[string]string{"b.c": "", "a.c": "", "c/z.c": ""}
	assert.Equal(t, []string{"a.c", "b.c", "c/z.c"}, SortedPaths(files))
}
