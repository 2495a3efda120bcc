// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package version

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/asrayg/senior-design/pkg/types"
)

// Change pairs a freshly emitted version record with the snapshot it
// superseded. PriorSnapshot is empty when the artifact is new.
type Change struct {
	Record        types.ArtifactVersion
	PriorSnapshot string
}

// Result summarizes one tracking run.
type Result struct {
	New       int
	Changed   int
	Unchanged int

	// Changes holds the records emitted this run, in artifact id order.
	Changes []Change

	// Current is the full artifact id → current version map after the run,
	// as persisted to the store.
	Current map[string]types.ArtifactVersion
}

// Tracker compares a canonical graph document against a version store and
// records one new ArtifactVersion per added or changed node. Records are
// never mutated; a changed artifact gets a fresh record whose parent points
// at the superseded version.
type Tracker struct {
	store        *Store
	artifactType types.ArtifactType
	tool         types.Tool
	logger       *slog.Logger

	now func() time.Time
}

// NewTracker returns a tracker that stamps records with the given artifact
// type and tool.
func NewTracker(store *Store, artifactType types.ArtifactType, tool types.Tool, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:        store,
		artifactType: artifactType,
		tool:         tool,
		logger:       logger,
		now:          time.Now,
	}
}

// Track hashes every node in doc, emits version records for new and changed
// artifacts, and rewrites the store. An unreadable or corrupt store degrades
// to empty history: every artifact in the run is treated as new.
func (t *Tracker) Track(doc *types.GraphDocument) (*Result, error) {
	previous, err := t.store.Load()
	if err != nil {
		t.logger.Warn("version store unreadable, starting with empty history", "path", t.store.Path(), "error", err)
		previous = map[string]types.ArtifactVersion{}
	}

	ids := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &Result{Current: make(map[string]types.ArtifactVersion, len(ids))}
	for _, id := range ids {
		snapshot, err := CanonicalSnapshot(doc.Nodes[id])
		if err != nil {
			return nil, fmt.Errorf("hashing artifact %s: %v", id, err)
		}
		hash := Hash(snapshot)

		prior, known := previous[id]
		if known && prior.VersionID == hash {
			result.Current[id] = prior
			result.Unchanged++
			continue
		}

		var parentID, priorSnapshot string
		if known {
			parentID = prior.VersionID
			priorSnapshot = prior.Snapshot
			result.Changed++
			t.logger.Debug("artifact changed", "artifact_id", id, "parent_version_id", parentID)
		} else {
			result.New++
			t.logger.Debug("artifact new", "artifact_id", id)
		}

		record := NewVersion(id, snapshot, t.artifactType, t.tool, parentID, t.now())
		result.Current[id] = record
		result.Changes = append(result.Changes, Change{Record: record, PriorSnapshot: priorSnapshot})
	}

	if err := t.store.Save(result.Current); err != nil {
		return nil, err
	}
	t.logger.Info("tracking complete",
		"tool", t.tool,
		"new", result.New,
		"changed", result.Changed,
		"unchanged", result.Unchanged)
	return result, nil
}
