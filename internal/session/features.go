// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"strings"
)

// Variant names a UI preset.
type Variant string

const (
	// VariantBasic offers send, clear and suggestion chips.
	VariantBasic Variant = "basic"

	// VariantFull adds progress, export, feedback, search and theme toggle.
	VariantFull Variant = "full"
)

// Welcome texts shown in a fresh or cleared transcript.
const (
	WelcomeBasic = "Welcome to the MOSDAC Chatbot! Ask about satellites, meteorology, " +
		"or oceanography to explore our scientific database."
	WelcomeFull = "Welcome to the MOSDAC Chatbot! Explore our scientific database by " +
		"asking about satellites, meteorology, or oceanography."
)

// ParseVariant parses a variant name. Empty means VariantFull.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantBasic:
		return VariantBasic, nil
	case VariantFull, "":
		return VariantFull, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want basic or full)", s)
	}
}

// Welcome returns the welcome text for v.
func (v Variant) Welcome() string {
	if v == VariantBasic {
		return WelcomeBasic
	}
	return WelcomeFull
}

// Features lists the optional controls a front end offers. The session
// itself only consults Progress; the rest gate key bindings and commands.
type Features struct {
	Progress     bool `toml:"progress"`
	Export       bool `toml:"export"`
	Feedback     bool `toml:"feedback"`
	Autocomplete bool `toml:"autocomplete"`
	ThemeToggle  bool `toml:"theme_toggle"`
}

// FeaturesFor returns the preset for v.
func FeaturesFor(v Variant) Features {
	if v == VariantBasic {
		return Features{}
	}
	return Features{
		Progress:     true,
		Export:       true,
		Feedback:     true,
		Autocomplete: true,
		ThemeToggle:  true,
	}
}
