// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across modelgraph packages.
package types

// Requirement represents a SysML requirement extracted from a model archive.
// XMIID is the internal identity, unique within one parse; ReqID is the
// business-facing identifier and may collide across files merged in a batch.
type Requirement struct {
	ReqID      string            `json:"req_id"`
	XMIID      string            `json:"xmi_id"`
	Name       string            `json:"name"`
	Text       string            `json:"text"`
	ReqType    string            `json:"req_type"`
	OwnerID    string            `json:"owner_id,omitempty"`
	Properties map[string]string `json:"properties"`
	SourceFile string            `json:"source_file"`

	// Traceability relationships. Each entry is the XMIID of another
	// requirement in the same parse once resolved.
	DerivesFrom []string `json:"derives_from"`
	Refines     []string `json:"refines"`
	Satisfies   []string `json:"satisfies"`
	Verifies    []string `json:"verifies"`
	TracesTo    []string `json:"traces_to"`
}

// OutgoingRefs returns the union of refine, satisfy, verify, and trace
// targets, in that order.
func (r *Requirement) OutgoingRefs() []string {
	out := make([]string, 0, len(r.Refines)+len(r.Satisfies)+len(r.Verifies)+len(r.TracesTo))
	out = append(out, r.Refines...)
	out = append(out, r.Satisfies...)
	out = append(out, r.Verifies...)
	out = append(out, r.TracesTo...)
	return out
}
