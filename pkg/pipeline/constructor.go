// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/asrayg/senior-design/internal/batch"
	"github.com/asrayg/senior-design/internal/codegen"
	"github.com/asrayg/senior-design/internal/graph"
	"github.com/asrayg/senior-design/internal/simulink"
	"github.com/asrayg/senior-design/internal/version"
	"github.com/asrayg/senior-design/pkg/types"
)

const (
	cameoStoreFile    = "cameo_versions.json"
	simulinkStoreFile = "simulink_versions.json"
)

// New validates the config and returns a ready-to-use Pipeline.
func New(cfg Config) (Pipeline, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)
	return &pipelineAdapter{cfg: cfg}, nil
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.TrackVersions && cfg.StoreDir == "" {
		return fmt.Errorf("StoreDir is required when TrackVersions is set")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("Workers must not be negative")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
}

// pipelineAdapter wires the internal extraction packages to the public
// Pipeline interface.
type pipelineAdapter struct {
	cfg Config
}

func (p *pipelineAdapter) ExtractRequirements(ctx context.Context, dir string) (*Result, error) {
	runner := batch.NewRunner(p.cfg.Workers, p.cfg.Logger)
	doc, summary, err := runner.ProcessDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Graph:             doc,
		TotalFiles:        summary.TotalFiles,
		Successful:        summary.Successful,
		Failed:            summary.Failed,
		TotalRequirements: summary.TotalRequirements,
	}
	for _, f := range summary.Files {
		result.Outcomes = append(result.Outcomes, Outcome{
			Filename:     f.Filename,
			Status:       f.Status,
			Requirements: f.Requirements,
			Error:        f.Error,
		})
	}
	for _, c := range summary.Collisions {
		result.Collisions = append(result.Collisions, Collision{
			NodeID:         c.NodeID,
			KeptSource:     c.KeptSource,
			ShadowedSource: c.ShadowedSource,
		})
	}

	if p.cfg.InferHierarchy {
		result.HierarchyEdges = graph.InferHierarchy(doc)
	}
	if p.cfg.TrackVersions {
		if err := p.track(doc, types.ArtifactRequirement, types.ToolCameo, cameoStoreFile, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *pipelineAdapter) ExtractModel(ctx context.Context, dir string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model, err := simulink.LoadModel(dir, p.cfg.Logger)
	if err != nil {
		return nil, err
	}
	doc := graph.FromBlocks(model.Blocks, model.Connections, model.Name)

	result := &Result{
		Graph:      doc,
		TotalFiles: 1,
		Successful: 1,
	}
	if p.cfg.TrackVersions {
		if err := p.track(doc, types.ArtifactModel, types.ToolSimulink, simulinkStoreFile, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *pipelineAdapter) MapGeneratedCode(ctx context.Context, archivePath string) (*types.MappingDocument, error) {
	return codegen.NewMapper(p.cfg.Logger).MapArchive(ctx, archivePath)
}

func (p *pipelineAdapter) track(doc *types.GraphDocument, artifactType types.ArtifactType, tool types.Tool, storeFile string, result *Result) error {
	store := version.NewStore(filepath.Join(p.cfg.StoreDir, storeFile))
	tracker := version.NewTracker(store, artifactType, tool, p.cfg.Logger)
	tracked, err := tracker.Track(doc)
	if err != nil {
		return err
	}
	result.NewVersions = tracked.New
	result.ChangedVersions = tracked.Changed
	result.UnchangedVersions = tracked.Unchanged
	return nil
}
