// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package graph unifies requirement and block entities into the canonical
// node shape, merges documents across batch files, infers hierarchy from
// dot-delimited ids, and reports on graph quality. Requirements and blocks
// share no behavior, only an output projection, so each kind has its own
// adapter instead of a common abstraction.
package graph

import (
	"reflect"

	"github.com/asrayg/senior-design/pkg/types"
)

// FromRequirements projects extracted requirements onto canonical nodes
// keyed by req_id. Incoming edges are derivation sources; outgoing edges are
// the union of refine/satisfy/verify/trace targets.
func FromRequirements(reqs map[string]*types.Requirement) *types.GraphDocument {
	doc := types.NewGraphDocument()
	for _, req := range reqs {
		doc.Nodes[req.ReqID] = &types.Node{
			Name:       req.Name,
			NodeType:   "Requirement_" + req.ReqType,
			Text:       req.Text,
			XMIID:      req.XMIID,
			Incoming:   append([]string{}, req.DerivesFrom...),
			Outgoing:   req.OutgoingRefs(),
			Properties: req.Properties,
			SourceFile: req.SourceFile,
		}
	}
	return doc
}

// FromBlocks projects blocks and their connections onto canonical nodes
// keyed by SID. Incoming and outgoing are literal per-connection peer SID
// lists; a connection contributes edges only when both endpoints are known
// blocks.
func FromBlocks(blocks map[string]*types.Block, conns []types.Connection, modelName string) *types.GraphDocument {
	doc := types.NewGraphDocument()
	for sid, blk := range blocks {
		props := make(map[string]string, len(blk.Properties)+2)
		for k, v := range blk.Properties {
			props[k] = v
		}
		props["parent_system"] = blk.ParentSystem
		props["model_name"] = modelName

		doc.Nodes[sid] = &types.Node{
			Name:       blk.Name,
			NodeType:   blk.BlockType,
			Incoming:   []string{},
			Outgoing:   []string{},
			Properties: props,
			SourceFile: modelName,
		}
	}

	for _, conn := range conns {
		src, okSrc := doc.Nodes[conn.SourceBlock]
		dst, okDst := doc.Nodes[conn.DestBlock]
		if !okSrc || !okDst {
			continue
		}
		src.Outgoing = append(src.Outgoing, conn.DestBlock)
		dst.Incoming = append(dst.Incoming, conn.SourceBlock)
	}
	return doc
}

// Collision records a node id produced by two batch inputs with differing
// content. The later file's content wins; the occurrence is surfaced in the
// batch summary rather than silently dropped.
type Collision struct {
	NodeID         string `json:"node_id"`
	KeptSource     string `json:"kept_source"`
	ShadowedSource string `json:"shadowed_source"`
}

// Merge copies every node of src into dst, stamping sourceFile, with
// last-write-wins semantics on id collisions. Collisions with differing
// content are returned.
func Merge(dst, src *types.GraphDocument, sourceFile string) []Collision {
	var collisions []Collision
	for id, node := range src.Nodes {
		stamped := *node
		if sourceFile != "" {
			stamped.SourceFile = sourceFile
		}
		if prev, ok := dst.Nodes[id]; ok && !reflect.DeepEqual(prev, &stamped) {
			collisions = append(collisions, Collision{
				NodeID:         id,
				KeptSource:     stamped.SourceFile,
				ShadowedSource: prev.SourceFile,
			})
		}
		dst.Nodes[id] = &stamped
	}
	return collisions
}
