// Copyright (c) 2026 Asray Gopa. All rights reserved.
// SPDX-License-Identifier: MIT

package simulink

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asrayg/senior-design/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const rootDescriptor = `<ModelInformation>
  <Model>
    <P Name="Name">CruiseControl</P>
    <P Name="Version">10.4</P>
  </Model>
</ModelInformation>`

const systemDescriptor = `<System>
  <Block BlockType="Inport" Name="speed" SID="10">
    <P Name="Position">[100, 50, 130, 70]</P>
    <P Name="Port">1</P>
    <P Name="ZOrder">3</P>
    <PortCounts out="1"/>
  </Block>
  <Block BlockType="Gain" Name="K" SID="20">
    <P Name="Position">not a rectangle</P>
    <P Name="Gain">2.5</P>
    <PortCounts in="1" out="1"/>
  </Block>
  <Block BlockType="Outport" Name="cmd" SID="30"/>
  <Line>
    <P Name="Src">10#out:1</P>
    <P Name="Name">speed_raw</P>
    <Branch>
      <P Name="Dst">20#in:1</P>
    </Branch>
    <Branch>
      <P Name="Dst">30#in:1</P>
    </Branch>
  </Line>
  <Line>
    <P Name="Src">20#out:1</P>
    <P Name="Dst">30#state</P>
  </Line>
  <Line>
    <P Name="Src">garbled endpoint</P>
    <P Name="Dst">30#in:1</P>
  </Line>
</System>`

// writeModelTree lays out a model directory: <dir>/<name>/simulink/ with the
// root and system descriptors.
func writeModelTree(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name, "simulink")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "systems"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blockdiagram.xml"), []byte(rootDescriptor), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "systems", "system_root.xml"), []byte(systemDescriptor), 0o644))
	return dir
}

func TestLoadModel(t *testing.T) {
	dir := writeModelTree(t, "CruiseControl")
	m, err := LoadModel(dir, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "CruiseControl", m.Name, "leaf simulink dir defers to parent for model name")
	assert.Equal(t, "10.4", m.Info["Version"])
	require.Len(t, m.Blocks, 3)

	speed := m.Blocks["10"]
	assert.Equal(t, "Inport", speed.BlockType)
	assert.Equal(t, types.Position{X: 100, Y: 50, Width: 130, Height: 70}, speed.Position)
	assert.Equal(t, "system_root", speed.ParentSystem)
	assert.Equal(t, 1, speed.OutputPorts)
	assert.Equal(t, "1", speed.Properties["Port"])
	assert.NotContains(t, speed.Properties, "Position")
	assert.NotContains(t, speed.Properties, "ZOrder")

	gain := m.Blocks["20"]
	assert.Equal(t, types.DefaultPosition, gain.Position, "malformed rectangle falls back to default")
	assert.Equal(t, 1, gain.InputPorts)

	out := m.Blocks["30"]
	assert.Equal(t, types.DefaultPosition, out.Position)
	assert.Zero(t, out.InputPorts)
}

func TestLoadModelConnections(t *testing.T) {
	dir := writeModelTree(t, "CruiseControl")
	m, err := LoadModel(dir, testLogger())
	require.NoError(t, err)

	// Branched line: exactly two connections, both sharing the source
	// endpoint; the line itself has no direct destination.
	branched := []types.Connection{}
	for _, c := range m.Connections {
		if c.SourceBlock == "10" {
			branched = append(branched, c)
		}
	}
	require.Len(t, branched, 2)
	for _, c := range branched {
		assert.Equal(t, "10", c.SourceBlock)
		assert.Equal(t, 1, c.SourcePort)
		assert.Equal(t, "speed_raw", c.SignalName)
	}
	assert.Equal(t, "20", branched[0].DestBlock)
	assert.Equal(t, "30", branched[1].DestBlock)

	// State endpoint normalizes to port 0.
	var state *types.Connection
	for i, c := range m.Connections {
		if c.SourceBlock == "20" {
			state = &m.Connections[i]
		}
	}
	require.NotNil(t, state)
	assert.Equal(t, "30", state.DestBlock)
	assert.Zero(t, state.DestPort)

	// The garbled line was skipped, counted, non-fatal.
	assert.Len(t, m.Connections, 3)
	assert.Equal(t, 1, m.SkippedLines)
}

func TestLoadModelMissingTree(t *testing.T) {
	_, err := LoadModel(t.TempDir(), testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTree)
}

func TestModelNamePlainDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "EngineModel")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "systems"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "systems", "system_root.xml"), []byte("<System/>"), 0o644))

	m, err := LoadModel(dir, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "EngineModel", m.Name)
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		input string
		want  Endpoint
		ok    bool
	}{
		{input: "10#out:1", want: Endpoint{SID: "10", Kind: "out", Port: 1}, ok: true},
		{input: "7#in:22", want: Endpoint{SID: "7", Kind: "in", Port: 22}, ok: true},
		{input: "15#state", want: Endpoint{SID: "15", Kind: "state", Port: 0}, ok: true},
		{input: "15#state:1", ok: false},
		{input: "abc#out:1", ok: false},
		{input: "10#sideways:1", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseEndpoint(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
