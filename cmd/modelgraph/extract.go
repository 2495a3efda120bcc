// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asrayg/senior-design/pkg/pipeline"
)

// newExtractCmd creates the "extract" command.
func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <archive-dir>",
		Short: "Extract requirements from a directory of .mdzip archives",
		Long:  "Extract parses every Cameo .mdzip archive in the directory, resolves requirement relationships, and merges the results into one canonical graph document.",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}

	cmd.Flags().Bool("hierarchy", false, "Infer containment edges from dotted requirement ids")
	cmd.Flags().Bool("track", false, "Record version lineage after extraction")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	inferHierarchy, _ := cmd.Flags().GetBool("hierarchy")
	track, _ := cmd.Flags().GetBool("track")

	p, err := pipeline.New(pipeline.Config{
		StoreDir:       viper.GetString("store-dir"),
		Workers:        viper.GetInt("workers"),
		InferHierarchy: inferHierarchy,
		TrackVersions:  track,
		Logger:         newLogger(),
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := p.ExtractRequirements(ctx, args[0])
	if err != nil {
		return err
	}

	outputDir := viper.GetString("output")
	graphPath := filepath.Join(outputDir, "all_requirements.json")
	if err := writeJSON(graphPath, result.Graph); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outputDir, "batch_summary.json"), batchSummary(result)); err != nil {
		return err
	}

	fmt.Printf("Extracted %d requirements from %d/%d archives into %s\n",
		result.TotalRequirements, result.Successful, result.TotalFiles, graphPath)
	if track {
		fmt.Printf("Versions: %d new, %d changed, %d unchanged\n",
			result.NewVersions, result.ChangedVersions, result.UnchangedVersions)
	}
	return nil
}

// batchSummary shapes an extraction result for the summary document.
func batchSummary(result *pipeline.Result) map[string]any {
	files := make([]map[string]any, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		entry := map[string]any{
			"filename": o.Filename,
			"status":   o.Status,
		}
		if o.Error != "" {
			entry["error"] = o.Error
		} else {
			entry["requirements"] = o.Requirements
		}
		files = append(files, entry)
	}
	summary := map[string]any{
		"total_files":        result.TotalFiles,
		"successful":         result.Successful,
		"failed":             result.Failed,
		"total_requirements": result.TotalRequirements,
		"files":              files,
	}
	if len(result.Collisions) > 0 {
		collisions := make([]map[string]string, 0, len(result.Collisions))
		for _, c := range result.Collisions {
			collisions = append(collisions, map[string]string{
				"node_id":         c.NodeID,
				"kept_source":     c.KeptSource,
				"shadowed_source": c.ShadowedSource,
			})
		}
		summary["collisions"] = collisions
	}
	return summary
}
