// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch processes a directory of requirements archives in parallel
// and merges the per-archive results into one canonical graph document.
// Archives are independent, so one worker per archive is safe; a failed
// archive is recorded in the summary and never aborts the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/asrayg/senior-design/internal/archive"
	"github.com/asrayg/senior-design/internal/cameo"
	"github.com/asrayg/senior-design/internal/graph"
	"github.com/asrayg/senior-design/pkg/types"
)

// FileOutcome records how one archive fared.
type FileOutcome struct {
	Filename     string `json:"filename"`
	Status       string `json:"status"`
	Requirements int    `json:"requirements,omitempty"`
	Error        string `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Summary aggregates a batch run.
type Summary struct {
	TotalFiles        int               `json:"total_files"`
	Successful        int               `json:"successful"`
	Failed            int               `json:"failed"`
	TotalRequirements int               `json:"total_requirements"`
	Files             []FileOutcome     `json:"files"`
	Collisions        []graph.Collision `json:"collisions,omitempty"`
}

// Runner processes archives with a bounded worker pool.
type Runner struct {
	workers int
	logger  *slog.Logger
}

// NewRunner returns a runner with the given parallelism. workers <= 0 uses
// one worker per available CPU.
func NewRunner(workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{workers: workers, logger: logger}
}

type fileResult struct {
	doc          *types.GraphDocument
	requirements int
	err          error
}

// ProcessDir parses every .mdzip archive in dir and merges the resulting
// requirement graphs. Per-archive failures become failed outcomes in the
// summary; the returned error covers only directory access and context
// cancellation.
func (r *Runner) ProcessDir(ctx context.Context, dir string) (*types.GraphDocument, *Summary, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.mdzip"))
	if err != nil {
		return nil, nil, fmt.Errorf("listing archives in %s: %v", dir, err)
	}
	sort.Strings(paths)
	r.logger.Info("batch start", "dir", dir, "archives", len(paths), "workers", r.workers)

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Merge in sorted filename order so collisions resolve deterministically.
	merged := types.NewGraphDocument()
	summary := &Summary{TotalFiles: len(paths), Files: make([]FileOutcome, 0, len(paths))}
	for i, path := range paths {
		name := filepath.Base(path)
		res := results[i]
		if res.err != nil {
			r.logger.Warn("archive failed", "file", name, "error", res.err)
			summary.Failed++
			summary.Files = append(summary.Files, FileOutcome{Filename: name, Status: StatusFailed, Error: res.err.Error()})
			continue
		}
		collisions := graph.Merge(merged, res.doc, name)
		summary.Collisions = append(summary.Collisions, collisions...)
		summary.Successful++
		summary.TotalRequirements += res.requirements
		summary.Files = append(summary.Files, FileOutcome{Filename: name, Status: StatusSuccess, Requirements: res.requirements})
	}
	r.logger.Info("batch complete",
		"successful", summary.Successful,
		"failed", summary.Failed,
		"requirements", summary.TotalRequirements,
		"collisions", len(summary.Collisions))
	return merged, summary, nil
}

func (r *Runner) processOne(path string) fileResult {
	name := filepath.Base(path)
	data, err := archive.ReadModelEntry(path)
	if err != nil {
		return fileResult{err: err}
	}
	parsed, err := cameo.Parse(data, name, r.logger)
	if err != nil {
		return fileResult{err: err}
	}
	return fileResult{
		doc:          graph.FromRequirements(parsed.Requirements),
		requirements: len(parsed.Requirements),
	}
}
