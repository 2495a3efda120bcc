// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package cameo

import (
	"strings"

	"github.com/asrayg/senior-design/internal/xmlmodel"
)

// collectRelations is phase 1 of relationship resolution: every relationship
// candidate with both endpoint references whose client is a known
// requirement contributes a raw reference to the owning requirement's list
// for its kind. References are opaque ids at this point; they are not
// validated until resolve.
func (s *session) collectRelations() {
	for _, rel := range s.relations {
		client := rel.Attr("client")
		supplier := rel.Attr("supplier")
		if client == "" || supplier == "" {
			continue
		}
		req, ok := s.requirements[client]
		if !ok {
			continue
		}

		switch s.relationKind(rel) {
		case "derives":
			req.DerivesFrom = append(req.DerivesFrom, supplier)
		case "refines":
			req.Refines = append(req.Refines, supplier)
		case "satisfies":
			req.Satisfies = append(req.Satisfies, supplier)
		case "verifies":
			req.Verifies = append(req.Verifies, supplier)
		default:
			req.TracesTo = append(req.TracesTo, supplier)
		}
	}
}

// relationKind classifies a relationship element: stereotype keyword applied
// to the element itself, then keyword match on its name, then "traces".
func (s *session) relationKind(rel *xmlmodel.Element) string {
	if id := xmiAttr(rel, "id"); id != "" {
		if st, ok := s.stereotypes[id]; ok {
			if k := kindKeyword(strings.ToLower(st.Keyword)); k != "" {
				return k
			}
		}
	}
	if k := kindKeyword(strings.ToLower(rel.Attr("name"))); k != "" {
		return k
	}
	return "traces"
}

// resolve is phase 2: rewrite every collected reference, retaining only
// those that equal another requirement's internal id. Anything else is
// dropped silently and counted. Duplicates are collapsed; the downstream
// loader merges edges idempotently either way.
func (s *session) resolve() {
	for _, req := range s.requirements {
		req.DerivesFrom = s.resolveRefs(req.DerivesFrom)
		req.Refines = s.resolveRefs(req.Refines)
		req.Satisfies = s.resolveRefs(req.Satisfies)
		req.Verifies = s.resolveRefs(req.Verifies)
		req.TracesTo = s.resolveRefs(req.TracesTo)
	}
}

func (s *session) resolveRefs(refs []string) []string {
	resolved := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if _, ok := s.requirements[ref]; !ok {
			s.misses++
			continue
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		resolved = append(resolved, ref)
	}
	return resolved
}

// kindKeyword maps a keyword found in a stereotype or name to a
// relationship kind.
func kindKeyword(lower string) string {
	switch {
	case strings.Contains(lower, "derive"):
		return "derives"
	case strings.Contains(lower, "refine"):
		return "refines"
	case strings.Contains(lower, "satisf"):
		return "satisfies"
	case strings.Contains(lower, "verif"):
		return "verifies"
	}
	return ""
}
