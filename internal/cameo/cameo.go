// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cameo extracts SysML requirements and their traceability
// relationships from a MagicDraw/Cameo model definition.
//
// A parse runs four strictly ordered phases over one document: a single
// tree traversal builds the stereotype and element indices, the extractor
// turns stereotype-tagged elements into requirements, and the relationship
// resolver collects raw references before projecting them through the
// requirement id table. Relationships may reference requirements not yet
// visited in document order, which is why collection and resolution are
// separate phases.
package cameo

import (
	"log/slog"

	"github.com/asrayg/senior-design/internal/xmlmodel"
	"github.com/asrayg/senior-design/pkg/types"
)

// stereotypeKeywords are matched by containment against an element's tag and
// declared type. Vendor export shapes vary, so exact matching is too strict.
var stereotypeKeywords = []string{"Requirement", "Derive", "Refine", "Satisfy", "Verify", "Trace"}

// relationKeywords identify relationship elements by declared type.
var relationKeywords = []string{"Dependency", "Abstraction", "Realization", "Trace"}

// Result holds the outcome of one parse.
type Result struct {
	// Requirements is keyed by xmi_id, the internal identity unique within
	// this parse.
	Requirements map[string]*types.Requirement
	// ElementCount is the number of identified elements seen in the model.
	ElementCount int
	// ResolutionMisses counts relationship references that named an element
	// outside the requirement set and were dropped.
	ResolutionMisses int
}

// stereotype carries what a stereotype application declares about its base
// element.
type stereotype struct {
	Keyword string
	ID      string
	Text    string
	Source  string
}

// element is one entry of the global id index.
type element struct {
	Name   string
	Type   string
	Source string
	el     *xmlmodel.Element
}

// session is the parse-scoped state. It is constructed at the start of one
// parse and discarded at its end, so parses stay independently
// parallelizable.
type session struct {
	logger     *slog.Logger
	sourceFile string

	stereotypes  map[string]stereotype // base element id -> stereotype
	elements     map[string]*element   // xmi id -> element
	relations    []*xmlmodel.Element   // relationship candidates, document order
	requirements map[string]*types.Requirement
	misses       int
}

// Parse extracts requirements from the raw model definition bytes.
// sourceFile labels every extracted requirement with its originating
// archive.
func Parse(data []byte, sourceFile string, logger *slog.Logger) (*Result, error) {
	root, err := xmlmodel.Parse(data)
	if err != nil {
		return nil, err
	}

	s := &session{
		logger:       logger.With("source", sourceFile),
		sourceFile:   sourceFile,
		stereotypes:  make(map[string]stereotype),
		elements:     make(map[string]*element),
		requirements: make(map[string]*types.Requirement),
	}

	s.collect(root)
	s.extract()
	s.collectRelations()
	s.resolve()

	s.logger.Info("parse complete",
		"requirements", len(s.requirements),
		"elements", len(s.elements),
		"resolution_misses", s.misses)

	return &Result{
		Requirements:     s.requirements,
		ElementCount:     len(s.elements),
		ResolutionMisses: s.misses,
	}, nil
}

// xmiAttr returns an XMI-namespaced attribute, tolerating documents that
// never declare the namespace prefix.
func xmiAttr(el *xmlmodel.Element, local string) string {
	if v := el.AttrIn("XMI", local); v != "" {
		return v
	}
	return el.AttrIn("xmi", local)
}
