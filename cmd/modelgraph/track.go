// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	versionpkg "github.com/asrayg/senior-design/internal/version"
	"github.com/asrayg/senior-design/pkg/types"
)

// newTrackCmd creates the "track" command.
func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track <graph.json>",
		Short: "Record version lineage for a canonical graph document",
		Long:  "Track hashes every node in the graph document, records a new version for each added or changed artifact, and updates the version store for the selected tool.",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrack,
	}

	cmd.Flags().String("tool", "cameo", "Source tool of the document: cameo or simulink")
	cmd.Flags().Bool("show-diff", false, "Print a snapshot diff for each changed artifact")

	return cmd
}

func runTrack(cmd *cobra.Command, args []string) error {
	toolFlag, _ := cmd.Flags().GetString("tool")
	showDiff, _ := cmd.Flags().GetBool("show-diff")

	var (
		tool         types.Tool
		artifactType types.ArtifactType
		storeFile    string
	)
	switch toolFlag {
	case "cameo":
		tool, artifactType, storeFile = types.ToolCameo, types.ArtifactRequirement, "cameo_versions.json"
	case "simulink":
		tool, artifactType, storeFile = types.ToolSimulink, types.ArtifactModel, "simulink_versions.json"
	default:
		return fmt.Errorf("unknown tool %q: expected cameo or simulink", toolFlag)
	}

	doc, err := loadGraphDoc(args[0])
	if err != nil {
		return err
	}

	store := versionpkg.NewStore(filepath.Join(viper.GetString("store-dir"), storeFile))
	tracker := versionpkg.NewTracker(store, artifactType, tool, newLogger())
	result, err := tracker.Track(doc)
	if err != nil {
		return err
	}

	fmt.Printf("Tracked %d artifacts: %d new, %d changed, %d unchanged\n",
		len(result.Current), result.New, result.Changed, result.Unchanged)

	if showDiff {
		for _, change := range result.Changes {
			if change.PriorSnapshot == "" {
				continue
			}
			fmt.Printf("\n--- %s ---\n", change.Record.ArtifactID)
			fmt.Println(versionpkg.SnapshotDiff(change.PriorSnapshot, change.Record.Snapshot))
		}
	}
	return nil
}
