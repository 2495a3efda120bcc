// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// CodeReference is a single occurrence of a block path inside a generated
// source file.
type CodeReference struct {
	Line int    `json:"line"`
	Code string `json:"code"`
}

// CodeMapping groups every occurrence of one block path within one file.
// BlockName is the last path segment of BlockPath.
type CodeMapping struct {
	FilePath       string          `json:"file_path"`
	BlockPath      string          `json:"block_path"`
	BlockName      string          `json:"block_name"`
	Location       string          `json:"location"`
	CodeReferences []CodeReference `json:"code_references"`
}

// MappingDocument is the code mapping document produced from one code
// generation archive.
type MappingDocument struct {
	SourceFile string        `json:"source_file"`
	CFiles     []string      `json:"c_files"`
	Mappings   []CodeMapping `json:"mappings"`
}
