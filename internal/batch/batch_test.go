// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

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

const alphaModel = `<?xml version="1.0" encoding="UTF-8"?>
<xmi:XMI xmlns:xmi="http://www.omg.org/spec/XMI/20131001"
         xmlns:uml="http://www.omg.org/spec/UML/20131001"
         xmlns:sysml="http://www.omg.org/spec/SysML/20150709">
  <uml:Model xmi:id="m1" name="Alpha">
    <packagedElement xmi:type="uml:Class" xmi:id="a1" name="Startup Requirement" text="The system shall start."/>
    <packagedElement xmi:type="uml:Class" xmi:id="a2" name="Shutdown Requirement" text="The system shall stop."/>
  </uml:Model>
  <sysml:Requirement xmi:id="s1" base_Class="a1" id="SYS-1"/>
  <sysml:Requirement xmi:id="s2" base_Class="a2" id="SYS-2"/>
</xmi:XMI>`

const betaModel = `<?xml version="1.0" encoding="UTF-8"?>
<xmi:XMI xmlns:xmi="http://www.omg.org/spec/XMI/20131001"
         xmlns:uml="http://www.omg.org/spec/UML/20131001"
         xmlns:sysml="http://www.omg.org/spec/SysML/20150709">
  <uml:Model xmi:id="m1" name="Beta">
    <packagedElement xmi:type="uml:Class" xmi:id="b1" name="Startup Requirement" text="The system shall start fast."/>
  </uml:Model>
  <sysml:Requirement xmi:id="s1" base_Class="b1" id="SYS-1"/>
</xmi:XMI>`

func writeArchive(t *testing.T, path, model string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(archive.ModelEntryName)
	require.NoError(t, err)
	_, err = w.Write([]byte(model))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestProcessDirMergesArchives(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, filepath.Join(dir, "alpha.mdzip"), alphaModel)
	writeArchive(t, filepath.Join(dir, "beta.mdzip"), betaModel)

	runner := NewRunner(2, testLogger())
	doc, summary, err := runner.ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 2, summary.Successful)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, 3, summary.TotalRequirements)

	// SYS-1 appears in both archives with differing content: processed in
	// sorted filename order, beta wins and the collision is recorded.
	require.Len(t, summary.Collisions, 1)
	assert.Equal(t, "SYS-1", summary.Collisions[0].NodeID)
	assert.Equal(t, "beta.mdzip", summary.Collisions[0].KeptSource)
	assert.Equal(t, "alpha.mdzip", summary.Collisions[0].ShadowedSource)

	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "The system shall start fast.", doc.Nodes["SYS-1"].Text)
	assert.Equal(t, "beta.mdzip", doc.Nodes["SYS-1"].SourceFile)
	assert.Equal(t, "alpha.mdzip", doc.Nodes["SYS-2"].SourceFile)
}

func TestProcessDirContinuesPastBadArchive(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, filepath.Join(dir, "alpha.mdzip"), alphaModel)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mdzip"), []byte("not a zip"), 0o644))

	runner := NewRunner(0, testLogger())
	doc, summary, err := runner.ProcessDir(context.Background(), dir)
	require.NoError(t, err, "a bad archive never aborts the batch")

	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, doc.Nodes, 2)

	require.Len(t, summary.Files, 2)
	assert.Equal(t, StatusSuccess, summary.Files[0].Status)
	assert.Equal(t, "broken.mdzip", summary.Files[1].Filename)
	assert.Equal(t, StatusFailed, summary.Files[1].Status)
	assert.NotEmpty(t, summary.Files[1].Error)
}

func TestProcessDirEmptyDirectory(t *testing.T) {
	runner := NewRunner(1, testLogger())
	doc, summary, err := runner.ProcessDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, doc.Nodes)
	assert.Zero(t, summary.TotalFiles)
	assert.Empty(t, summary.Files)
}
