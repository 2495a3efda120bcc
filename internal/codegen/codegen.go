// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

// Package codegen maps generated C sources back to the model blocks they
// were generated from. Code generators stamp traceability comments of the
// form '<Path>/Name' into the emitted code; every occurrence is grouped by
// (file, block path).
package codegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/asrayg/senior-design/internal/archive"
	"github.com/asrayg/senior-design/pkg/types"
)

// ErrNoSources indicates a code generation archive yielded no C files; an
// archive without sources has nothing to trace.
var ErrNoSources = errors.New("no C sources in archive")

// blockRefPattern matches traceability tokens like '<Root>/F1' or '<S1>/Sum'.
var blockRefPattern = regexp.MustCompile(`'<([^>]+)>/([^']+)'`)

// commentQuery captures every comment node in a C translation unit.
const commentQuery = `(comment) @comment`

// Mapper scans generated source archives for block traceability comments.
type Mapper struct {
	logger *slog.Logger
}

// NewMapper creates a Mapper.
func NewMapper(logger *slog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// occurrence is one raw match before grouping.
type occurrence struct {
	file      string
	blockPath string
	line      int
	code      string
}

// MapArchive extracts the code generation archive (reusing its cache
// directory when already extracted) and scans every recovered C file.
func (m *Mapper) MapArchive(ctx context.Context, archivePath string) (*types.MappingDocument, error) {
	files, err := archive.ExtractSources(archivePath, ".c")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, archivePath)
	}
	return m.MapFiles(ctx, archivePath, files), nil
}

// MapFiles scans an already-recovered file map. Mappings are grouped by
// (file path, block path) in first-occurrence order; a key accumulates every
// matching line across its file.
func (m *Mapper) MapFiles(ctx context.Context, sourceFile string, files map[string]string) *types.MappingDocument {
	doc := &types.MappingDocument{
		SourceFile: sourceFile,
		CFiles:     archive.SortedPaths(files),
		Mappings:   []types.CodeMapping{},
	}

	index := make(map[string]int) // file + "\x00" + blockPath -> doc.Mappings index
	total := 0
	for _, path := range doc.CFiles {
		for _, occ := range m.scanFile(ctx, path, files[path]) {
			key := occ.file + "\x00" + occ.blockPath
			i, ok := index[key]
			if !ok {
				i = len(doc.Mappings)
				index[key] = i
				doc.Mappings = append(doc.Mappings, types.CodeMapping{
					FilePath:  occ.file,
					BlockPath: occ.blockPath,
					BlockName: blockName(occ.blockPath),
					Location:  occ.file + ":" + occ.blockPath,
				})
			}
			doc.Mappings[i].CodeReferences = append(doc.Mappings[i].CodeReferences, types.CodeReference{
				Line: occ.line,
				Code: occ.code,
			})
			total++
		}
	}

	m.logger.Info("code mappings extracted",
		"source", sourceFile,
		"c_files", len(doc.CFiles),
		"references", total,
		"blocks", len(doc.Mappings))
	return doc
}

// scanFile locates comment regions with the C grammar and matches the
// traceability pattern against each source line the comments cover. When the
// file does not parse, every line is scanned instead.
func (m *Mapper) scanFile(ctx context.Context, path, content string) []occurrence {
	lines := strings.Split(content, "\n")

	rows, ok := commentRows(ctx, content)
	if !ok {
		m.logger.Debug("comment parse failed, scanning all lines", "file", path)
		rows = nil
	}

	var out []occurrence
	for i, line := range lines {
		if rows != nil && !rows[i] {
			continue
		}
		for _, mch := range blockRefPattern.FindAllStringSubmatch(line, -1) {
			out = append(out, occurrence{
				file:      path,
				blockPath: "<" + mch[1] + ">/" + mch[2],
				line:      i + 1,
				code:      strings.TrimSpace(line),
			})
		}
	}
	return out
}

// commentRows returns the set of 0-based line numbers covered by comment
// nodes.
func commentRows(ctx context.Context, content string) (map[int]bool, bool) {
	src := []byte(content)
	root, err := sitter.ParseCtx(ctx, src, c.GetLanguage())
	if err != nil || root == nil {
		return nil, false
	}

	q, err := sitter.NewQuery([]byte(commentQuery), c.GetLanguage())
	if err != nil {
		return nil, false
	}
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	rows := make(map[int]bool)
	for {
		mch, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capt := range mch.Captures {
			for r := int(capt.Node.StartPoint().Row); r <= int(capt.Node.EndPoint().Row); r++ {
				rows[r] = true
			}
		}
	}
	return rows, true
}

// blockName is the last segment of a block path.
func blockName(blockPath string) string {
	if i := strings.LastIndex(blockPath, "/"); i >= 0 {
		return blockPath[i+1:]
	}
	return blockPath
}
