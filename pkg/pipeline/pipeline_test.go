// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asrayg/senior-design/internal/archive"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

const requirementsModel = `<?xml version="1.0" encoding="UTF-8"?>
<xmi:XMI xmlns:xmi="http://www.omg.org/spec/XMI/20131001"
         xmlns:uml="http://www.omg.org/spec/UML/20131001"
         xmlns:sysml="http://www.omg.org/spec/SysML/20150709">
  <uml:Model xmi:id="m1" name="Demo">
    <packagedElement xmi:type="uml:Class" xmi:id="r1" name="Vehicle Requirement" text="Top level."/>
    <packagedElement xmi:type="uml:Class" xmi:id="r2" name="Braking Requirement" text="Braking distance shall not exceed 30 m."/>
  </uml:Model>
  <sysml:Requirement xmi:id="s1" base_Class="r1" id="SYS-1"/>
  <sysml:Requirement xmi:id="s2" base_Class="r2" id="SYS-1.2"/>
</xmi:XMI>`

func writeArchive(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(archive.ModelEntryName)
	require.NoError(t, err)
	_, err = w.Write([]byte(requirementsModel))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty config is valid", cfg: Config{}},
		{name: "tracking requires store dir", cfg: Config{TrackVersions: true}, wantErr: true},
		{name: "tracking with store dir", cfg: Config{TrackVersions: true, StoreDir: "out"}},
		{name: "negative workers", cfg: Config{Workers: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExtractRequirementsEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	storeDir := t.TempDir()
	writeArchive(t, filepath.Join(inputDir, "demo.mdzip"))

	p, err := New(Config{
		StoreDir:       storeDir,
		InferHierarchy: true,
		TrackVersions:  true,
		Logger:         testLogger(),
	})
	require.NoError(t, err)

	result, err := p.ExtractRequirements(context.Background(), inputDir)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalFiles)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.TotalRequirements)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "demo.mdzip", result.Outcomes[0].Filename)

	// SYS-1.2 is contained by SYS-1 via its dotted id.
	assert.Equal(t, 1, result.HierarchyEdges)
	assert.Contains(t, result.Graph.Nodes["SYS-1.2"].Incoming, "SYS-1")

	// First run records everything as new.
	assert.Equal(t, 2, result.NewVersions)
	assert.Zero(t, result.ChangedVersions)

	// Second run over the unchanged input emits no new records.
	again, err := p.ExtractRequirements(context.Background(), inputDir)
	require.NoError(t, err)
	assert.Zero(t, again.NewVersions)
	assert.Zero(t, again.ChangedVersions)
	assert.Equal(t, 2, again.UnchangedVersions)
}
