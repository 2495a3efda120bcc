// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Node is the canonical node shape shared by both source formats. For
// requirements, Incoming holds derivation sources and Outgoing the union of
// refine/satisfy/verify/trace targets; for blocks, both hold per-connection
// peer SIDs.
type Node struct {
	Name       string            `json:"name"`
	NodeType   string            `json:"node_type"`
	Text       string            `json:"text,omitempty"`
	XMIID      string            `json:"xmi_id,omitempty"`
	Incoming   []string          `json:"incoming"`
	Outgoing   []string          `json:"outgoing"`
	Properties map[string]string `json:"properties"`
	SourceFile string            `json:"source_file"`
}

// GraphDocument is the canonical graph document emitted by the extraction
// pipeline, keyed by node id. This exact shape is the contract consumed by
// the downstream graph loader.
type GraphDocument struct {
	Nodes map[string]*Node `json:"nodes"`
}

// NewGraphDocument returns an empty graph document.
func NewGraphDocument() *GraphDocument {
	return &GraphDocument{Nodes: make(map[string]*Node)}
}
