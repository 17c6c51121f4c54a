// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"--dir", "/tmp", "--json", "what", "is", "--format=md", "INSAT"}, "json")

	assert.Equal(t, "/tmp", p.Flag("dir"))
	assert.Equal(t, "md", p.Flag("--format"))
	assert.True(t, p.BoolFlag("json"))
	assert.Equal(t, "what is INSAT", p.JoinPositional(0))
	assert.Equal(t, 3, p.PositionalCount())
	assert.Equal(t, "", p.Positional(9))
	assert.True(t, p.HasFlag("dir"))
	assert.False(t, p.HasFlag("missing"))
	assert.Equal(t, "x", p.FlagOrDefault("missing", "x"))
}

func TestArgParser_UnknownFlagTakesValue(t *testing.T) {
	p := NewArgParser([]string{"--json", "hello"})
	assert.Equal(t, "hello", p.Flag("json"))
	assert.Zero(t, p.PositionalCount())
}

func TestArgParser_DoubleDashEndsFlags(t *testing.T) {
	p := NewArgParser([]string{"--", "--not-a-flag", "x"})
	assert.Equal(t, []string{"--not-a-flag", "x"}, p.PositionalFrom(0))
}

func TestArgParser_ExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--static=true"})
	assert.False(t, p.BoolFlag("json"))
	assert.True(t, p.BoolFlag("static"))
}

// =============================================================================
// COMMAND PARSING TESTS
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		cmd  Command
		want Args
	}{
		{"empty is tui", nil, CmdTUI, Args{}},
		{"ask joins words", []string{"ask", "What", "is", "INSAT-3D?"}, CmdAsk, Args{Text: "What is INSAT-3D?"}},
		{"ask json", []string{"ask", "--json", "cyclone"}, CmdAsk, Args{JSON: true, Text: "cyclone"}},
		{"global flags anywhere", []string{"--url", "http://h:1", "ask", "-v", "x", "--variant=basic"}, CmdAsk,
			Args{URL: "http://h:1", Verbose: true, Variant: "basic", Text: "x"}},
		{"config flag", []string{"--config=/etc/m.toml", "chat"}, CmdChat, Args{ConfigPath: "/etc/m.toml"}},
		{"clear", []string{"clear", "--json"}, CmdClear, Args{JSON: true}},
		{"feedback", []string{"fb", "nice", "work"}, CmdFeedback, Args{Text: "nice work"}},
		{"suggest static", []string{"suggest", "--static", "oce"}, CmdSuggest, Args{Static: true, Text: "oce"}},
		{"version flag", []string{"--version"}, CmdVersion, Args{}},
		{"help", []string{"-h"}, CmdHelp, Args{}},
		{"quiet tui", []string{"-q"}, CmdTUI, Args{Quiet: true}},
		{"unknown", []string{"frobnicate"}, CmdHelp, Args{Unknown: "frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := Parse(tt.argv)
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.want, args)
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "tui", CmdTUI.String())
	assert.Equal(t, "suggest", CmdSuggest.String())
}

func TestPrintUsageAndVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	assert.Contains(t, buf.String(), "mosdac ask")
	assert.Contains(t, buf.String(), Version)

	buf.Reset()
	PrintVersion(&buf)
	assert.Contains(t, buf.String(), "mosdac version "+Version)
}

func TestPrintVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintVersionJSON(&buf))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Version, got["version"])
	assert.NotEmpty(t, got["platform"])
}
