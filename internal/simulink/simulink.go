// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package simulink parses an extracted Simulink model tree: a root diagram
// descriptor holding model-level metadata plus one descriptor per system
// under systems/, yielding blocks and signal connections.
package simulink

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/asrayg/senior-design/internal/xmlmodel"
	"github.com/asrayg/senior-design/pkg/types"
)

// ErrMissingTree indicates the model directory holds no descriptors at all.
var ErrMissingTree = errors.New("no model descriptors found")

// Model is the parsed content of one model tree.
type Model struct {
	Name         string
	Info         map[string]string // model-level metadata from the root descriptor
	Blocks       map[string]*types.Block
	Connections  []types.Connection
	SkippedLines int // lines or branches with unparseable endpoints
}

// LoadModel parses the root descriptor and every system descriptor under
// dir. The model name derives from the directory: when the leaf directory is
// the conventional "simulink" payload dir, its parent names the model.
func LoadModel(dir string, logger *slog.Logger) (*Model, error) {
	m := &Model{
		Name:   modelName(dir),
		Info:   make(map[string]string),
		Blocks: make(map[string]*types.Block),
	}
	log := logger.With("model", m.Name)

	found := false
	rootPath := filepath.Join(dir, "blockdiagram.xml")
	if data, err := os.ReadFile(rootPath); err == nil {
		found = true
		if err := m.parseRoot(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", rootPath, err)
		}
	}

	systemFiles, _ := filepath.Glob(filepath.Join(dir, "systems", "*.xml"))
	sort.Strings(systemFiles)
	for _, sf := range systemFiles {
		found = true
		data, err := os.ReadFile(sf)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", sf, err)
		}
		if err := m.parseSystem(data, systemName(sf)); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", sf, err)
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMissingTree, dir)
	}

	log.Info("model loaded",
		"blocks", len(m.Blocks),
		"connections", len(m.Connections),
		"skipped_lines", m.SkippedLines)
	return m, nil
}

// modelName derives the model name from its directory path.
func modelName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if strings.EqualFold(base, "simulink") {
		return filepath.Base(filepath.Dir(filepath.Clean(dir)))
	}
	return base
}

// systemName is the descriptor's base name without extension, recorded as
// each block's parent system.
func systemName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// parseRoot reads model-level metadata from the root diagram descriptor.
func (m *Model) parseRoot(data []byte) error {
	root, err := xmlmodel.Parse(data)
	if err != nil {
		return err
	}
	for _, model := range root.FindAll("Model") {
		for _, p := range model.FindAll("P") {
			if name := p.Attr("Name"); name != "" {
				m.Info[name] = p.Text
			}
		}
	}
	return nil
}

// parseSystem reads blocks and lines from one system descriptor.
func (m *Model) parseSystem(data []byte, system string) error {
	root, err := xmlmodel.Parse(data)
	if err != nil {
		return err
	}
	for _, b := range root.FindAll("Block") {
		if blk := parseBlock(b, system); blk != nil {
			m.Blocks[blk.SID] = blk
		}
	}
	for _, line := range root.FindAll("Line") {
		m.parseLine(line)
	}
	return nil
}

// parseBlock turns a block descriptor into a Block. Position falls back to
// the default rectangle when absent or unparseable; remaining P entries
// become properties, excluding position and z-order.
func parseBlock(el *xmlmodel.Element, system string) *types.Block {
	sid := el.Attr("SID")
	if sid == "" {
		return nil
	}

	blk := &types.Block{
		SID:          sid,
		Name:         el.Attr("Name"),
		BlockType:    el.Attr("BlockType"),
		Position:     types.DefaultPosition,
		Properties:   make(map[string]string),
		ParentSystem: system,
	}

	for _, p := range el.FindAll("P") {
		name := p.Attr("Name")
		switch name {
		case "":
		case "Position":
			if pos, ok := parsePosition(p.Text); ok {
				blk.Position = pos
			}
		case "ZOrder":
		default:
			blk.Properties[name] = p.Text
		}
	}

	if pc := el.Find("PortCounts"); pc != nil {
		blk.InputPorts = atoiOrZero(pc.Attr("in"))
		blk.OutputPorts = atoiOrZero(pc.Attr("out"))
	}
	return blk
}

// parsePosition parses a "[x, y, w, h]" rectangle.
func parsePosition(s string) (types.Position, bool) {
	trimmed := strings.Trim(strings.TrimSpace(s), "[]")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 4 {
		return types.Position{}, false
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return types.Position{}, false
		}
		vals[i] = v
	}
	return types.Position{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, true
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseLine yields one primary connection from the line's own source and
// destination, plus one connection per branch reusing the line's source.
// Destination and name lookups are direct-child only so a branch's
// destination is never mistaken for the line's own. Unparseable endpoints
// skip that line or branch, counted, non-fatal.
func (m *Model) parseLine(line *xmlmodel.Element) {
	src, ok := parseEndpoint(lineProp(line, "Src"))
	if !ok {
		m.SkippedLines++
		return
	}
	signal := lineProp(line, "Name")

	if dstText := lineProp(line, "Dst"); dstText != "" {
		if dst, ok := parseEndpoint(dstText); ok {
			m.Connections = append(m.Connections, types.Connection{
				SourceBlock: src.SID,
				SourcePort:  src.Port,
				DestBlock:   dst.SID,
				DestPort:    dst.Port,
				SignalName:  signal,
			})
		} else {
			m.SkippedLines++
		}
	}

	for _, branch := range line.ChildrenNamed("Branch") {
		dstText := lineProp(branch, "Dst")
		if dstText == "" {
			continue
		}
		dst, ok := parseEndpoint(dstText)
		if !ok {
			m.SkippedLines++
			continue
		}
		m.Connections = append(m.Connections, types.Connection{
			SourceBlock: src.SID,
			SourcePort:  src.Port,
			DestBlock:   dst.SID,
			DestPort:    dst.Port,
			SignalName:  signal,
		})
	}
}

// lineProp returns the text of a direct-child P entry with the given Name.
func lineProp(el *xmlmodel.Element, name string) string {
	for _, p := range el.ChildrenNamed("P") {
		if p.Attr("Name") == name {
			return p.Text
		}
	}
	return ""
}

// Endpoint is one parsed end of a signal line.
type Endpoint struct {
	SID  string
	Kind string // "out", "in", or "state"
	Port int
}

var (
	portEndpointRe  = regexp.MustCompile(`^(\d+)#(out|in):(\d+)$`)
	stateEndpointRe = regexp.MustCompile(`^(\d+)#state$`)
)

// parseEndpoint parses "<sid>#out:<port>", "<sid>#in:<port>", or
// "<sid>#state". State endpoints have no numbered port and normalize to
// port 0.
func parseEndpoint(s string) (Endpoint, bool) {
	if mch := portEndpointRe.FindStringSubmatch(s); mch != nil {
		port, _ := strconv.Atoi(mch[3])
		return Endpoint{SID: mch[1], Kind: mch[2], Port: port}, true
	}
	if mch := stateEndpointRe.FindStringSubmatch(s); mch != nil {
		return Endpoint{SID: mch[1], Kind: types.EndpointState, Port: 0}, true
	}
	return Endpoint{}, false
}
