// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline defines the public interface for the model extraction
// pipeline: requirements archives, block-diagram model trees, and generated
// code archives in; canonical graph and mapping documents out, with optional
// hierarchy inference and content-addressed version tracking.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/asrayg/senior-design/pkg/types"
)

// Error types for the Pipeline API.
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Config configures a Pipeline instance.
type Config struct {
	StoreDir       string       // Directory holding version store files (required when TrackVersions)
	Workers        int          // Parallel archive workers (default: one per CPU)
	InferHierarchy bool         // Infer containment edges from dotted requirement ids
	TrackVersions  bool         // Record version lineage after extraction
	Logger         *slog.Logger // nil = text handler on stderr
}

// Outcome reports how one input file fared during a batch run.
type Outcome struct {
	Filename     string
	Status       string
	Requirements int
	Error        string
}

// Collision reports a node id claimed by two input files with differing
// content. The later file in processing order wins.
type Collision struct {
	NodeID         string
	KeptSource     string
	ShadowedSource string
}

// Result holds the outcome of an extraction run.
type Result struct {
	Graph *types.GraphDocument

	TotalFiles        int
	Successful        int
	Failed            int
	TotalRequirements int
	Outcomes          []Outcome
	Collisions        []Collision

	// HierarchyEdges counts containment pairs added by inference.
	HierarchyEdges int

	// Version counters are zero unless TrackVersions is set.
	NewVersions       int
	ChangedVersions   int
	UnchangedVersions int
}

// Pipeline extracts engineering models into canonical graph documents.
type Pipeline interface {
	// ExtractRequirements processes every requirements archive (.mdzip) in
	// dir and merges the results into one graph document.
	ExtractRequirements(ctx context.Context, dir string) (*Result, error)

	// ExtractModel parses a block-diagram model tree rooted at dir into a
	// graph document of blocks and signal connections.
	ExtractModel(ctx context.Context, dir string) (*Result, error)

	// MapGeneratedCode extracts C sources from a code generation archive
	// and maps traceability comments back to model block paths.
	MapGeneratedCode(ctx context.Context, archivePath string) (*types.MappingDocument, error)
}
