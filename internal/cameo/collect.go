// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package cameo

import (
	"strings"

	"github.com/asrayg/senior-design/internal/xmlmodel"
)

// collect performs the single full-tree traversal, building the stereotype
// index, the global element index, and the relationship candidate list.
// Later phases perform pure lookups against these; the tree is never walked
// again.
func (s *session) collect(root *xmlmodel.Element) {
	root.Walk(func(el *xmlmodel.Element) {
		declType := xmiAttr(el, "type")

		if kw := matchStereotype(el.Tag, declType); kw != "" {
			if base := baseRef(el); base != "" {
				s.stereotypes[base] = stereotype{
					Keyword: kw,
					ID:      firstAttr(el, "id", "Id"),
					Text:    firstAttr(el, "text", "Text"),
					Source:  el.Attr("source"),
				}
			}
		}

		if id := xmiAttr(el, "id"); id != "" {
			s.elements[id] = &element{
				Name:   el.Attr("name"),
				Type:   declType,
				Source: el.Attr("source"),
				el:     el,
			}
		}

		for _, kw := range relationKeywords {
			if strings.Contains(declType, kw) {
				s.relations = append(s.relations, el)
				break
			}
		}
	})
}

// matchStereotype returns the first recognized stereotype keyword contained
// in the element's tag or declared type, or "".
func matchStereotype(tag, declType string) string {
	for _, kw := range stereotypeKeywords {
		if strings.Contains(tag, kw) || strings.Contains(declType, kw) {
			return kw
		}
	}
	return ""
}

// baseRef returns the id of the element a stereotype application is applied
// to. Export shapes name the attribute base_Class, base_Element,
// base_Abstraction and so on depending on the base metaclass, so any
// base_-prefixed attribute counts.
func baseRef(el *xmlmodel.Element) string {
	for _, a := range el.Attrs {
		if strings.HasPrefix(a.Local, "base_") && a.Value != "" {
			return a.Value
		}
	}
	return ""
}

// firstAttr returns the first non-empty un-namespaced attribute among the
// given local names.
func firstAttr(el *xmlmodel.Element, locals ...string) string {
	for _, l := range locals {
		if v := el.Attr(l); v != "" {
			return v
		}
	}
	return ""
}
