// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package graph

import (
	"sort"
	"strings"

	"github.com/asrayg/senior-design/pkg/types"
)

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one quality finding about a node. Findings never block graph
// export; they aggregate into the quality report.
type Issue struct {
	NodeID   string `json:"node_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Stats summarizes graph content for the quality report.
type Stats struct {
	Total             int            `json:"total"`
	WithText          int            `json:"with_text"`
	WithRelationships int            `json:"with_relationships"`
	ByType            map[string]int `json:"by_type"`
	BySource          map[string]int `json:"by_source"`
}

// Report is the quality report over one canonical graph document.
type Report struct {
	Stats  Stats   `json:"statistics"`
	Issues []Issue `json:"issues"`
}

// noTextFallback mirrors the extractor's literal fallback; a node carrying
// it has no real text.
const noTextFallback = "No text specified"

// Validate runs the per-node quality checks: missing name is an error,
// missing text and orphaned nodes (no incoming and no outgoing edges) are
// warnings. Issues are ordered by node id for stable reports.
func Validate(doc *types.GraphDocument) *Report {
	r := &Report{
		Stats: Stats{
			Total:    len(doc.Nodes),
			ByType:   make(map[string]int),
			BySource: make(map[string]int),
		},
		Issues: []Issue{},
	}

	ids := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := doc.Nodes[id]
		r.Stats.ByType[node.NodeType]++
		source := node.SourceFile
		if source == "" {
			source = "Unknown"
		}
		r.Stats.BySource[source]++

		if node.Name == "" {
			r.Issues = append(r.Issues, Issue{NodeID: id, Severity: SeverityError, Message: "missing name"})
		}
		if node.Text != "" && node.Text != noTextFallback {
			r.Stats.WithText++
		} else if strings.HasPrefix(node.NodeType, "Requirement") {
			// Block nodes carry no text; only requirements warrant the
			// missing-text warning.
			r.Issues = append(r.Issues, Issue{NodeID: id, Severity: SeverityWarning, Message: "missing text"})
		}
		if len(node.Incoming) > 0 || len(node.Outgoing) > 0 {
			r.Stats.WithRelationships++
		} else {
			r.Issues = append(r.Issues, Issue{NodeID: id, Severity: SeverityWarning, Message: "orphaned node: no relationships"})
		}
	}
	return r
}
