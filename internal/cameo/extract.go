// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package cameo

import (
	"strings"
	"unicode"

	"github.com/asrayg/senior-design/internal/xmlmodel"
	"github.com/asrayg/senior-design/pkg/types"
)

// noText is the literal fallback when no requirement text can be resolved.
const noText = "No text specified"

// idAttrVariants are the element attributes consulted, in order, when the
// stereotype application carries no id.
var idAttrVariants = []string{"id", "Id", "identifier", "ID"}

// extract builds a Requirement for every id tagged Requirement in the
// stereotype index that also appears in the element index with a valid name.
func (s *session) extract() {
	for id, st := range s.stereotypes {
		if st.Keyword != "Requirement" {
			continue
		}
		elem, ok := s.elements[id]
		if !ok || !ValidName(elem.Name) {
			continue
		}

		req := s.buildRequirement(id, st, elem)
		s.requirements[id] = req
		s.logger.Debug("requirement extracted", "req_id", req.ReqID, "name", req.Name)
	}
}

// ValidName rejects names that belong to UI artifacts rather than
// requirements: empty or placeholder names, names of length <= 2 after
// trimming, pure digits (with or without internal spaces), and lone
// punctuation characters.
func ValidName(name string) bool {
	n := strings.TrimSpace(name)
	if n == "" || len(n) <= 2 {
		return false
	}
	if isDigits(strings.ReplaceAll(n, " ", "")) {
		return false
	}
	switch n {
	case "+", "-", "*", "/", "=", ".", ",":
		return false
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (s *session) buildRequirement(xmiID string, st stereotype, elem *element) *types.Requirement {
	source := st.Source
	if source == "" {
		source = elem.Source
	}
	if source == "" {
		source = s.sourceFile
	}

	return &types.Requirement{
		ReqID:       resolveReqID(st, elem.el, elem.Name, xmiID),
		XMIID:       xmiID,
		Name:        elem.Name,
		Text:        resolveText(st, elem.el),
		ReqType:     resolveReqType(elem.el, elem.Name),
		OwnerID:     elem.el.Attr("owner"),
		Properties:  extractProperties(elem.el),
		SourceFile:  source,
		DerivesFrom: []string{},
		Refines:     []string{},
		Satisfies:   []string{},
		Verifies:    []string{},
		TracesTo:    []string{},
	}
}

// resolveText applies the text fallback chain: stereotype-level text, the
// element's text/body/specification/Text attributes, a nested comment body,
// then the literal fallback. First non-empty wins.
func resolveText(st stereotype, el *xmlmodel.Element) string {
	if st.Text != "" {
		return st.Text
	}
	if v := firstAttr(el, "text", "body", "specification", "Text"); v != "" {
		return v
	}
	for _, c := range el.FindAll("ownedComment") {
		if body := c.Attr("body"); body != "" {
			return body
		}
	}
	return noText
}

// resolveReqID applies the id fallback chain: stereotype-level id, element
// id attribute variants, the element's own name when it reads like a
// requirement id, a cleaned name, then a generated id from the internal
// identifier suffix.
func resolveReqID(st stereotype, el *xmlmodel.Element, name, xmiID string) string {
	if st.ID != "" {
		return st.ID
	}
	if v := firstAttr(el, idAttrVariants...); v != "" {
		return v
	}
	upper := strings.ToUpper(name)
	if strings.Contains(upper, "REQ") || strings.Contains(upper, "R-") {
		return name
	}
	if clean := cleanName(name); clean != "" {
		return "REQ-" + clean
	}
	return "REQ-" + idSuffix(xmiID)
}

// cleanName strips everything but alphanumerics, dashes, and underscores.
func cleanName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func idSuffix(xmiID string) string {
	if len(xmiID) > 8 {
		return xmiID[len(xmiID)-8:]
	}
	return xmiID
}

// typeKeywords map name substrings to requirement types, checked in order.
var typeKeywords = []struct {
	substr  string
	reqType string
}{
	{"functional", "Functional"},
	{"performance", "Performance"},
	{"non-functional", "Performance"},
	{"interface", "Interface"},
	{"design", "Design"},
	{"test", "Test"},
	{"system", "System"},
	{"user", "User"},
}

// resolveReqType applies the type fallback chain: explicit attribute, name
// keyword match, then "General".
func resolveReqType(el *xmlmodel.Element, name string) string {
	if v := firstAttr(el, "type", "requirementType"); v != "" {
		return v
	}
	lower := strings.ToLower(name)
	for _, tk := range typeKeywords {
		if strings.Contains(lower, tk.substr) {
			return tk.reqType
		}
	}
	return "General"
}

// consumedAttrs are the element attributes claimed by id, type, and name
// handling; everything else becomes a property.
var consumedAttrs = map[string]bool{
	"name":            true,
	"id":              true,
	"Id":              true,
	"identifier":      true,
	"ID":              true,
	"type":            true,
	"requirementType": true,
}

func extractProperties(el *xmlmodel.Element) map[string]string {
	props := make(map[string]string)
	for _, a := range el.Attrs {
		if a.Space != "" || consumedAttrs[a.Local] {
			continue
		}
		props[a.Local] = a.Value
	}
	return props
}
