// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package graph

import (
	"sort"
	"strings"

	"github.com/asrayg/senior-design/pkg/types"
)

// InferHierarchy derives implicit parent/child edges from dot-delimited
// node ids: for every id containing a dot, the prefix before the last dot
// is its candidate parent, and when that parent exists in the node set the
// child gains an incoming edge from it and the parent an outgoing edge to
// it. Both additions are idempotent. Only the immediate parent is computed
// per id; multi-level ancestry emerges from applying the rule to every id.
// Ids are visited in sorted order so edge lists come out identical across
// runs; the lists feed content hashing downstream. Returns the number of
// parent/child pairs added.
func InferHierarchy(doc *types.GraphDocument) int {
	ids := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	added := 0
	for _, id := range ids {
		node := doc.Nodes[id]
		i := strings.LastIndex(id, ".")
		if i < 0 {
			continue
		}
		parentID := id[:i]
		parent, ok := doc.Nodes[parentID]
		if !ok {
			continue
		}

		linked := false
		if !contains(node.Incoming, parentID) {
			node.Incoming = append(node.Incoming, parentID)
			linked = true
		}
		if !contains(parent.Outgoing, id) {
			parent.Outgoing = append(parent.Outgoing, id)
			linked = true
		}
		if linked {
			added++
		}
	}
	return added
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
