// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package version tracks canonical graph nodes across runs. Each node's
// snapshot is serialized with sorted keys and hashed with SHA-256; the hex
// digest is the version id, so identical content always produces the same id
// regardless of which run computed it. Lineage is a singly-linked parent
// chain of immutable records.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asrayg/senior-design/pkg/types"
)

// CanonicalSnapshot serializes v as compact JSON with object keys in sorted
// order. Marshaling through an intermediate map normalizes key order, since
// Go emits map keys sorted.
func CanonicalSnapshot(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializing snapshot: %v", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return "", fmt.Errorf("normalizing snapshot: %v", err)
	}
	canonical, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("serializing snapshot: %v", err)
	}
	return string(canonical), nil
}

// Hash returns the SHA-256 hex digest of a canonical snapshot string.
func Hash(snapshot string) string {
	sum := sha256.Sum256([]byte(snapshot))
	return hex.EncodeToString(sum[:])
}

// NewVersion builds an immutable version record for a snapshot. parentID is
// empty for the first version of an artifact.
func NewVersion(artifactID, snapshot string, artifactType types.ArtifactType, tool types.Tool, parentID string, now time.Time) types.ArtifactVersion {
	return types.ArtifactVersion{
		ArtifactID:      artifactID,
		VersionID:       Hash(snapshot),
		ArtifactType:    artifactType,
		Tool:            tool,
		Timestamp:       now.UTC().Format(time.RFC3339),
		ParentVersionID: parentID,
		Snapshot:        snapshot,
	}
}
