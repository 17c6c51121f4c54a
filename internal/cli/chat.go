// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for the mosdac CLI.
//
// Interactive commands:
//
//	/clear              Clear the conversation
//	/export [dir] [--format txt|json|md]
//	                    Save the history to mosdac_chat_history.<ext>
//	/feedback [text]    Send feedback; prompts when text is omitted
//	/suggest <partial>  Search suggestions
//	/pick <n>           Ask suggestion n from the last answer
//	/welcome            Show the welcome text
//	/help               Show these commands
//	/quit               Exit (also Ctrl+D)
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/export"
	"github.com/jeranaias/mosdac-chat/internal/model"
	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
	"github.com/jeranaias/mosdac-chat/internal/util"
)

// HistoryFileName is the liner history file inside the config dir.
const HistoryFileName = "chat_history"

// =============================================================================
// CONSOLE DIALOG HOST
// =============================================================================

// ConsoleDialogs prints the welcome banner and tracks whether the feedback
// prompt is open. It is the REPL's session.DialogHost.
type ConsoleDialogs struct {
	mu           sync.Mutex
	w            io.Writer
	welcome      string
	feedbackOpen bool
}

// NewConsoleDialogs prints welcome to w when the welcome dialog opens.
func NewConsoleDialogs(w io.Writer, welcome string) *ConsoleDialogs {
	return &ConsoleDialogs{w: w, welcome: welcome}
}

// Open implements session.DialogHost.
func (d *ConsoleDialogs) Open(dialog session.Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch dialog {
	case session.DialogWelcome:
		fmt.Fprintln(d.w, bannerStyle.Render(d.welcome))
		fmt.Fprintln(d.w, dimStyle.Render("Type a question, or /help for commands."))
	case session.DialogFeedback:
		d.feedbackOpen = true
	}
}

// Close implements session.DialogHost.
func (d *ConsoleDialogs) Close(dialog session.Dialog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dialog == session.DialogFeedback {
		d.feedbackOpen = false
	}
}

// FeedbackOpen reports whether the feedback prompt is active.
func (d *ConsoleDialogs) FeedbackOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.feedbackOpen
}

// =============================================================================
// REPL
// =============================================================================

// Prompter reads one line. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// errQuit ends the loop.
var errQuit = errors.New("quit")

// Chat is the line-mode front end over a session.
type Chat struct {
	Session  *session.Session
	Dialogs  *ConsoleDialogs
	Out      io.Writer
	Err      io.Writer
	Markdown *Renderer
	Logger   *zap.Logger

	// Progress draws the progress bar on Err while a request runs.
	Progress bool
}

// HandleLine runs one line of input. It returns errQuit for /quit.
func (c *Chat) HandleLine(ctx context.Context, p Prompter, line string) error {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		// Blank lines go through Send too, which warns about them.
		return c.ask(ctx, line)
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	f := c.Session.Features()

	switch strings.ToLower(cmd) {
	case "/quit", "/q", "/exit":
		return errQuit

	case "/help", "/h", "/?":
		c.printHelp()

	case "/clear", "/c":
		// The session reports the outcome.
		_ = c.Session.Clear(ctx)

	case "/export":
		if !f.Export {
			c.unavailable("export")
			return nil
		}
		c.export(rest)

	case "/feedback", "/fb":
		if !c.Session.OpenFeedback() {
			c.unavailable("feedback")
			return nil
		}
		c.feedback(ctx, p, rest)

	case "/suggest", "/s":
		if !f.Autocomplete {
			c.unavailable("search")
			return nil
		}
		items := c.Session.Suggest(ctx, rest)
		if len(items) == 0 {
			fmt.Fprintln(c.Out, dimStyle.Render("no suggestions"))
			return nil
		}
		for _, s := range items {
			fmt.Fprintln(c.Out, "  "+chipStyle.Render(s))
		}

	case "/pick", "/p":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > len(c.Session.Suggestions()) {
			fmt.Fprintln(c.Err, warningStyle.Render(styles.StatusIndicators.Warning)+
				" usage: /pick <n> with n from the suggestion list")
			return nil
		}
		msg, _ := c.Session.SelectSuggestionAt(ctx, n-1)
		c.printReply(msg)

	case "/welcome":
		c.Session.ShowWelcome()

	default:
		fmt.Fprintf(c.Err, "%s unknown command %s, try /help\n",
			warningStyle.Render(styles.StatusIndicators.Warning), cmd)
	}
	return nil
}

func (c *Chat) ask(ctx context.Context, query string) error {
	// The session notifies about failures; the reply is printed either way.
	msg, _ := c.Session.Send(ctx, query)
	c.printReply(msg)
	return nil
}

// printReply shows the bot message and the current suggestions. Failed
// requests still produce an error-styled reply, printed like any other.
func (c *Chat) printReply(m *model.Message) {
	if m == nil {
		return
	}
	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, labelStyle.Render(m.Role.DisplayName())+" "+dimStyle.Render(m.Clock()))
	if m.IsError {
		fmt.Fprintln(c.Out, errorStyle.Render(m.Text))
		fmt.Fprintln(c.Out)
		return
	}
	fmt.Fprintln(c.Out, c.Markdown.Render(m.Text))
	if sugg := c.Session.Suggestions(); len(sugg) > 0 {
		fmt.Fprintln(c.Out)
		printSuggestions(c.Out, sugg)
		fmt.Fprintln(c.Out, dimStyle.Render("/pick <n> to ask one"))
	}
	fmt.Fprintln(c.Out)
}

func (c *Chat) feedback(ctx context.Context, p Prompter, text string) {
	defer func() {
		if c.Dialogs.FeedbackOpen() {
			c.Session.CloseFeedback()
		}
	}()
	for {
		if text == "" {
			input, err := p.Prompt("feedback> ")
			if err != nil {
				return
			}
			text = input
		}
		if err := c.Session.SubmitFeedback(ctx, text); !errors.Is(err, session.ErrEmptyFeedback) {
			return
		}
		text = ""
	}
}

// export saves the transcript. --format overrides the configured format
// for this one file.
func (c *Chat) export(rest string) {
	args := NewArgParser(strings.Fields(rest))
	dir := args.Positional(0)

	var (
		path string
		err  error
	)
	if format := args.Flag("format"); format != "" {
		exporter, ferr := export.ForFormat(format)
		if ferr != nil {
			fmt.Fprintf(c.Err, "%s %v\n", warningStyle.Render(styles.StatusIndicators.Warning), ferr)
			return
		}
		path, err = c.Session.ExportFileAs(dir, exporter)
	} else {
		path, err = c.Session.ExportFile(dir)
	}
	if err == nil {
		fmt.Fprintln(c.Out, dimStyle.Render(path))
	}
}

func (c *Chat) unavailable(feature string) {
	fmt.Fprintf(c.Err, "%s %s is not available in the %s variant\n",
		warningStyle.Render(styles.StatusIndicators.Warning), feature, c.Session.Variant())
}

func (c *Chat) printHelp() {
	lines := []string{
		"/clear              clear the conversation",
		"/export [dir] [--format txt|json|md]  save the history",
		"/feedback [text]    send feedback",
		"/suggest <partial>  search suggestions",
		"/pick <n>           ask suggestion n",
		"/welcome            show the welcome text",
		"/quit               exit",
	}
	for _, l := range lines {
		fmt.Fprintln(c.Out, "  "+l)
	}
}

// Listener draws the progress bar on Err. Install it with SetListener.
func (c *Chat) Listener() session.Listener {
	return func(e session.Event) {
		if !c.Progress {
			return
		}
		switch {
		case e.Kind == session.EventProgress && e.Progress > 0:
			fmt.Fprintf(c.Err, "\r%s %3d%%", dimStyle.Render("["+styles.RenderProgressBar(30, float64(e.Progress))+"]"), e.Progress)
		case e.Kind == session.EventLoading && !e.Loading:
			fmt.Fprint(c.Err, "\r\033[K")
		}
	}
}

// =============================================================================
// LOOP
// =============================================================================

// Run reads lines with liner until /quit, Ctrl+D or ctx ends. historyDir
// holds the input history; empty disables it.
func (c *Chat) Run(ctx context.Context, historyDir string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if historyDir != "" {
		historyFile = filepath.Join(historyDir, HistoryFileName)
		if f, err := os.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
		defer c.saveHistory(line, historyDir, historyFile)
	}

	c.Session.Start()
	return c.Loop(ctx, line, func(s string) { line.AppendHistory(s) })
}

// Loop is the read-eval loop. remember records accepted input.
func (c *Chat) Loop(ctx context.Context, p Prompter, remember func(string)) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		input, err := p.Prompt(promptStyle.Render("mosdac> "))
		if err != nil {
			// Ctrl+C, Ctrl+D or closed input.
			fmt.Fprintln(c.Out)
			return nil
		}
		if strings.TrimSpace(input) != "" && remember != nil {
			remember(input)
		}
		if err := c.HandleLine(ctx, p, input); errors.Is(err, errQuit) {
			return nil
		}
	}
}

func (c *Chat) saveHistory(line *liner.State, dir, path string) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return
	}
	var buf bytes.Buffer
	if _, err := line.WriteHistory(&buf); err != nil {
		return
	}
	if err := util.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil && c.Logger != nil {
		c.Logger.Debug("history not saved", zap.Error(err))
	}
}
