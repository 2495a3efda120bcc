// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asrayg/senior-design/pkg/types"
)

// ErrStore indicates the persisted version store could not be read or
// written. The tracker degrades to empty history on a read failure, so
// callers of Track never see it for load problems.
var ErrStore = errors.New("version store error")

// Store persists the artifact id → current version map as one JSON file.
// It is single-writer: one process loads at the start of a run and saves
// once at the end.
type Store struct {
	path string
}

// NewStore returns a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full version map. A missing file is not an error and yields
// an empty map. An unreadable or corrupt file returns ErrStore alongside an
// empty map so callers can degrade to no history.
func (s *Store) Load() (map[string]types.ArtifactVersion, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]types.ArtifactVersion{}, nil
	}
	if err != nil {
		return map[string]types.ArtifactVersion{}, fmt.Errorf("%w: reading %s: %v", ErrStore, s.path, err)
	}
	var versions map[string]types.ArtifactVersion
	if err := json.Unmarshal(data, &versions); err != nil {
		return map[string]types.ArtifactVersion{}, fmt.Errorf("%w: parsing %s: %v", ErrStore, s.path, err)
	}
	if versions == nil {
		versions = map[string]types.ArtifactVersion{}
	}
	return versions, nil
}

// Save rewrites the store atomically: the map is written to a temp file in
// the same directory and renamed over the target.
func (s *Store) Save(versions map[string]types.ArtifactVersion) error {
	data, err := json.MarshalIndent(versions, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serializing %s: %v", ErrStore, s.path, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStore, dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStore, s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrStore, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrStore, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrStore, s.path, err)
	}
	return nil
}
