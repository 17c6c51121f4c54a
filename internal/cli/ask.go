// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot commands: ask, clear, feedback, suggest.
//
// Examples:
//
//	mosdac ask "What is INSAT-3D?"
//	mosdac ask --json "cyclone tracks"
//	mosdac feedback "Very helpful"
//	mosdac suggest ocea
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/suggest"
)

// ErrMissingText is returned when a command needs text and got none.
var ErrMissingText = errors.New("missing text")

// Runner executes the one-shot commands against a backend.
type Runner struct {
	Backend session.Backend
	Out     io.Writer
	Err     io.Writer

	// JSON prints response envelopes instead of text.
	JSON bool

	// Markdown renders answers; nil prints them as-is.
	Markdown *Renderer

	// MinChars is the suggest threshold; zero uses the provider default.
	MinChars int

	Logger *zap.Logger
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Ask sends one question and prints the answer and its suggestions.
// Server-side errors still print the envelope in JSON mode.
func (r *Runner) Ask(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("ask: %w: %s", ErrMissingText, session.EmptyQueryText)
	}

	resp, err := r.Backend.Ask(ctx, query)
	if r.JSON && resp != nil {
		if perr := printJSON(r.Out, resp); perr != nil {
			return perr
		}
		return err
	}
	if err != nil {
		r.logger().Debug("ask failed", zap.Error(err))
		return err
	}

	fmt.Fprintln(r.Out, r.Markdown.Render(resp.Response))
	if len(resp.Suggestions) > 0 {
		fmt.Fprintln(r.Out)
		printSuggestions(r.Out, resp.Suggestions)
	}
	return nil
}

// Clear resets the server conversation.
func (r *Runner) Clear(ctx context.Context) error {
	resp, err := r.Backend.Clear(ctx)
	return r.printStatus(resp, err)
}

// Feedback submits text.
func (r *Runner) Feedback(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("feedback: %w: %s", ErrMissingText, session.EmptyFeedbackText)
	}
	resp, err := r.Backend.Feedback(ctx, text)
	return r.printStatus(resp, err)
}

func (r *Runner) printStatus(resp *api.StatusResponse, err error) error {
	if r.JSON && resp != nil {
		if perr := printJSON(r.Out, resp); perr != nil {
			return perr
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, resp.Response)
	return nil
}

// Suggest prints suggestions for partial. static skips the service and
// filters the built-in list.
func (r *Runner) Suggest(ctx context.Context, partial string, static bool) error {
	var source suggest.Source
	if !static {
		source = r.Backend
	}
	p := suggest.New(source, suggest.Options{MinChars: r.MinChars, Logger: r.logger()})
	items := p.Suggest(ctx, partial)

	if r.JSON {
		if items == nil {
			items = []string{}
		}
		return printJSON(r.Out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(r.Err, dimStyle.Render(fmt.Sprintf("no suggestions (type at least %d characters)", p.MinChars())))
		return nil
	}
	for _, s := range items {
		fmt.Fprintln(r.Out, s)
	}
	return nil
}

// Describe turns a command error into the line shown to the user.
func Describe(err error) string {
	if api.IsApplication(err) {
		return "Error: " + api.ServerMessage(err)
	}
	return "Error: " + err.Error()
}
