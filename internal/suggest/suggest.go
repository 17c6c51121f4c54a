// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest provides search-as-you-type question suggestions.
//
// In dynamic mode each partial query (two or more characters) is sent to the
// ask endpoint and the returned suggestions are offered. When that call
// fails or yields nothing, a fixed static list is used instead. A provider
// without a dynamic source runs degraded: it filters the static list by
// case-insensitive substring and warns once that search is unavailable.
package suggest

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/jeranaias/mosdac-chat/internal/api"
)

// DefaultMinChars is the shortest partial query that triggers a lookup.
const DefaultMinChars = 2

// DegradedMessage is the warning shown when dynamic search is unavailable.
const DegradedMessage = "Search functionality unavailable. Using static suggestions."

// StaticSuggestions is the fallback list.
var StaticSuggestions = []string{
	"INSAT-3D",
	"Weather data",
	"Oceanographic satellites",
	"MOSDAC mission",
	"Satellite imagery",
	"Meteorological data",
	"Cyclone tracking",
}

// Source answers partial queries. *api.Client satisfies it.
type Source interface {
	Ask(ctx context.Context, query string) (*api.AskResponse, error)
}

// Options configures a Provider.
type Options struct {
	// MinChars is the minimum trimmed length, in runes, before a dynamic
	// lookup is made. Zero means DefaultMinChars.
	MinChars int

	// Static replaces StaticSuggestions when non-empty.
	Static []string

	// OnDegraded is called once, from Init, when the provider has no
	// dynamic source.
	OnDegraded func(message string)

	Logger *zap.Logger
}

// =============================================================================
// PROVIDER
// =============================================================================

// Provider produces suggestions for partial queries. It is safe for
// concurrent use.
type Provider struct {
	source     Source
	static     []string
	minChars   int
	onDegraded func(string)
	logger     *zap.Logger
	warnOnce   sync.Once
}

// New creates a provider. A nil source yields a degraded provider.
func New(source Source, opts Options) *Provider {
	p := &Provider{
		source:     source,
		static:     StaticSuggestions,
		minChars:   opts.MinChars,
		onDegraded: opts.OnDegraded,
		logger:     opts.Logger,
	}
	if len(opts.Static) > 0 {
		p.static = append([]string(nil), opts.Static...)
	}
	if p.minChars <= 0 {
		p.minChars = DefaultMinChars
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Init announces degraded mode. It is safe to call more than once.
func (p *Provider) Init() {
	if !p.Degraded() {
		return
	}
	p.warnOnce.Do(func() {
		p.logger.Warn("dynamic suggestions unavailable, using static list")
		if p.onDegraded != nil {
			p.onDegraded(DegradedMessage)
		}
	})
}

// Degraded reports whether the provider only filters the static list.
func (p *Provider) Degraded() bool {
	return p.source == nil
}

// MinChars returns the lookup threshold.
func (p *Provider) MinChars() int {
	return p.minChars
}

// Static returns a copy of the fallback list.
func (p *Provider) Static() []string {
	return append([]string(nil), p.static...)
}

// Suggest returns suggestions for partial.
//
// Degraded providers filter the static list for any input. Dynamic
// providers return nil below the length threshold, the server's
// suggestions when there are any, and the static list otherwise.
func (p *Provider) Suggest(ctx context.Context, partial string) []string {
	if p.Degraded() {
		return Filter(p.static, partial)
	}

	term := strings.TrimSpace(partial)
	if utf8.RuneCountInString(term) < p.minChars {
		return nil
	}

	resp, err := p.source.Ask(ctx, term)
	if err != nil {
		p.logger.Debug("suggestion lookup failed", zap.String("term", term), zap.Error(err))
		return p.Static()
	}
	if resp == nil || len(resp.Suggestions) == 0 {
		return p.Static()
	}
	return append([]string(nil), resp.Suggestions...)
}

// =============================================================================
// FILTERING
// =============================================================================

// Filter returns the items containing partial, compared with Unicode case
// folding. Order is preserved. A blank partial matches everything.
func Filter(items []string, partial string) []string {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(partial))

	out := make([]string, 0, len(items))
	for _, item := range items {
		if needle == "" || strings.Contains(fold.String(item), needle) {
			out = append(out, item)
		}
	}
	return out
}
