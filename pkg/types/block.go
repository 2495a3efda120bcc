// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// DefaultPosition is used when a block descriptor carries no parseable
// position rectangle.
var DefaultPosition = Position{X: 0, Y: 0, Width: 100, Height: 50}

// Position is a block's placement rectangle on the diagram canvas.
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Block represents a Simulink block parsed from a system descriptor.
// SID is unique within one model.
type Block struct {
	SID          string            `json:"sid"`
	Name         string            `json:"name"`
	BlockType    string            `json:"block_type"`
	Position     Position          `json:"position"`
	Properties   map[string]string `json:"properties"`
	ParentSystem string            `json:"parent_system"`
	InputPorts   int               `json:"input_ports"`
	OutputPorts  int               `json:"output_ports"`
}

// Endpoint kinds for connection ends. State endpoints carry no numbered
// port and are normalized to port 0.
const (
	EndpointOut   = "out"
	EndpointIn    = "in"
	EndpointState = "state"
)

// Connection represents a signal between two blocks. A branched line yields
// one Connection per destination, all sharing the same source endpoint.
type Connection struct {
	SourceBlock string `json:"source_block"`
	SourcePort  int    `json:"source_port"`
	DestBlock   string `json:"dest_block"`
	DestPort    int    `json:"dest_port"`
	SignalName  string `json:"signal_name,omitempty"`
}
