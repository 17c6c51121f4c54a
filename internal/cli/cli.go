// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line parsing for mosdac.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdClear
	CmdFeedback
	CmdSuggest
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdChat:
		return "chat"
	case CmdAsk:
		return "ask"
	case CmdClear:
		return "clear"
	case CmdFeedback:
		return "feedback"
	case CmdSuggest:
		return "suggest"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "tui"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	URL        string // --url overrides server.base_url
	ConfigPath string // --config overrides ~/.mosdac/config.toml
	Variant    string // --variant overrides ui.variant
	Verbose    bool
	Quiet      bool

	// Command-specific
	JSON   bool   // --json output for ask, clear, feedback, suggest
	Text   string // question, feedback text or partial query
	Static bool   // suggest --static

	// Unknown is set when the command word was not recognised.
	Unknown string
}

const usageText = `mosdac - terminal client for the MOSDAC chatbot

Usage:
  mosdac                         Start the TUI (default)
  mosdac chat                    Line-mode chat with history
  mosdac ask "question"          Ask a single question
  mosdac clear                   Reset the server conversation
  mosdac feedback "text"         Send feedback
  mosdac suggest "partial"       Show search suggestions
  mosdac version                 Show version
  mosdac help                    Show this help

Global flags:
  --url URL          Chatbot service root (default http://localhost:5000)
  --config PATH      Config file (default ~/.mosdac/config.toml)
  --variant NAME     UI preset: basic or full
  -v, --verbose      Debug logging
  -q, --quiet        Less output

Command flags:
  --json             Print the raw response envelope (ask, clear, feedback, suggest)
  --static           suggest: filter the built-in list only

TUI keys:
  Enter send   Tab suggestions   Ctrl+F search   Ctrl+L clear
  Ctrl+E export   Ctrl+T theme   F1 welcome   F2 feedback   Ctrl+C quit

Chat commands:
  /clear  /export [dir]  /feedback [text]  /suggest <partial>
  /pick <n>  /welcome  /help  /quit

Version: %s
`

// PrintUsage writes the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "mosdac version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// PrintVersionJSON writes version information as a JSON object.
func PrintVersionJSON(w io.Writer) error {
	return printJSON(w, map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go":         runtime.Version(),
		"platform":   runtime.GOOS + "/" + runtime.GOARCH,
	})
}

// Parse parses command-line arguments (without the program name).
func Parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdTUI, args
	}

	word := strings.ToLower(remaining[0])
	p := NewArgParser(remaining[1:], "json", "static")
	args.JSON = p.BoolFlag("json")
	args.Text = p.JoinPositional(0)

	switch word {
	case "tui":
		return CmdTUI, args
	case "chat", "repl":
		return CmdChat, args
	case "ask", "a":
		return CmdAsk, args
	case "clear":
		return CmdClear, args
	case "feedback", "fb":
		return CmdFeedback, args
	case "suggest":
		args.Static = p.BoolFlag("static")
		return CmdSuggest, args
	case "version", "--version":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		args.Unknown = remaining[0]
		return CmdHelp, args
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	value := func(i *int, arg, name string) (string, bool) {
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v, true
		}
		if arg == name && *i+1 < len(argv) {
			*i++
			return argv[*i], true
		}
		return "", false
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-v", "--verbose":
			args.Verbose = true
			continue
		case "-q", "--quiet":
			args.Quiet = true
			continue
		}
		if v, ok := value(&i, arg, "--url"); ok {
			args.URL = v
			continue
		}
		if v, ok := value(&i, arg, "--config"); ok {
			args.ConfigPath = v
			continue
		}
		if v, ok := value(&i, arg, "--variant"); ok {
			args.Variant = v
			continue
		}
		remaining = append(remaining, arg)
	}

	return remaining, args
}
