// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// ArtifactType identifies what kind of entity a version record tracks.
type ArtifactType string

const (
	ArtifactRequirement ArtifactType = "requirement"
	ArtifactModel       ArtifactType = "model"
)

// Tool identifies the authoring tool a tracked artifact originates from.
type Tool string

const (
	ToolCameo    Tool = "cameo"
	ToolSimulink Tool = "simulink"
)

// ArtifactVersion is one immutable record in an artifact's lineage.
// VersionID is a pure function of the snapshot content under a canonical
// key-order-independent serialization: identical content always yields the
// identical id, including across independent runs. ParentVersionID is empty
// for the first recorded version of an artifact.
type ArtifactVersion struct {
	ArtifactID      string       `json:"artifact_id"`
	VersionID       string       `json:"version_id"`
	ArtifactType    ArtifactType `json:"artifact_type"`
	Tool            Tool         `json:"tool"`
	Timestamp       string       `json:"timestamp"`
	ParentVersionID string       `json:"parent_version_id,omitempty"`
	Snapshot        string       `json:"snapshot"`
}
