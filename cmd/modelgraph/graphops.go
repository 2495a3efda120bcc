// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asrayg/senior-design/internal/graph"
)

// newValidateCmd creates the "validate" command.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <graph.json>",
		Short: "Run quality checks over a canonical graph document",
		Long:  "Validate reports nodes with missing names or text and orphaned nodes, plus aggregate statistics by type and source file.",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	cmd.Flags().String("report", "", "Write the report as JSON instead of printing a summary")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	reportPath, _ := cmd.Flags().GetString("report")

	doc, err := loadGraphDoc(args[0])
	if err != nil {
		return err
	}
	report := graph.Validate(doc)

	if reportPath != "" {
		if err := writeJSON(reportPath, report); err != nil {
			return err
		}
		fmt.Printf("Wrote quality report to %s\n", reportPath)
		return nil
	}

	fmt.Printf("Nodes: %d total, %d with text, %d with relationships\n",
		report.Stats.Total, report.Stats.WithText, report.Stats.WithRelationships)
	for _, issue := range report.Issues {
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.NodeID, issue.Message)
	}
	if len(report.Issues) == 0 {
		fmt.Println("No issues found.")
	}
	return nil
}

// newHierarchyCmd creates the "hierarchy" command.
func newHierarchyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hierarchy <graph.json>",
		Short: "Infer containment edges from dotted requirement ids",
		Long:  "Hierarchy links each node whose id has a dotted prefix (SYS-1.2 under SYS-1) to its parent node when the parent exists in the document.",
		Args:  cobra.ExactArgs(1),
		RunE:  runHierarchy,
	}

	cmd.Flags().String("out", "", "Output path (default: rewrite the input document)")

	return cmd
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = args[0]
	}

	doc, err := loadGraphDoc(args[0])
	if err != nil {
		return err
	}

	added := graph.InferHierarchy(doc)
	if err := writeJSON(outPath, doc); err != nil {
		return err
	}

	fmt.Printf("Added %d containment pairs, wrote %s\n", added, outPath)
	return nil
}
