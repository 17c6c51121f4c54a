// mosdac - A terminal client for the MOSDAC Chatbot.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/api"
	"github.com/jeranaias/mosdac-chat/internal/cli"
	"github.com/jeranaias/mosdac-chat/internal/config"
	"github.com/jeranaias/mosdac-chat/internal/logging"
	"github.com/jeranaias/mosdac-chat/internal/session"
	"github.com/jeranaias/mosdac-chat/internal/ui/chat"
	"github.com/jeranaias/mosdac-chat/internal/ui/components"
	"github.com/jeranaias/mosdac-chat/internal/ui/styles"
)

func main() {
	cmd, args := cli.Parse(os.Args[1:])
	if cmd == cli.CmdTUI && !slices.Contains(os.Args[1:], "tui") && !cli.IsStdoutTTY() {
		cmd = cli.CmdChat
	}

	switch cmd {
	case cli.CmdVersion:
		if args.JSON {
			_ = cli.PrintVersionJSON(os.Stdout)
			return
		}
		cli.PrintVersion(os.Stdout)
		return
	case cli.CmdHelp:
		if args.Unknown != "" {
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args.Unknown)
			cli.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		cli.PrintUsage(os.Stdout)
		return
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg, args)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("command", cmd.String()),
		zap.String("version", cli.Version),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("variant", string(cfg.Variant())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.Server.BaseURL).
		WithTimeout(cfg.Timeout()).
		WithLogger(logger)

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(ctx, cfg, args, client, logger)
	case cli.CmdChat:
		err = runChat(ctx, cfg, args, client, logger)
	default:
		err = runOneShot(ctx, cmd, cfg, args, client, logger)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", cmd.String()), zap.Error(err))
		fmt.Fprintln(os.Stderr, cli.Describe(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(args cli.Args) (*config.Config, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overlays --url, --variant and -v onto cfg. It runs again on
// every config reload so flags keep winning over the file.
func applyFlags(cfg *config.Config, args cli.Args) error {
	if args.URL != "" {
		cfg.Server.BaseURL = args.URL
	}
	if args.Variant != "" {
		v, err := session.ParseVariant(args.Variant)
		if err != nil {
			return err
		}
		cfg.UI.Variant = string(v)
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
	return nil
}

func newLogger(cfg *config.Config, args cli.Args) *zap.Logger {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		if !args.Quiet {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}
		return zap.NewNop()
	}
	return logger
}

func sessionOptions(cfg *config.Config, logger *zap.Logger) session.Options {
	features := cfg.FeatureSet()
	return session.Options{
		Variant:           cfg.Variant(),
		Features:          &features,
		StaticSuggestions: !cfg.Suggest.Dynamic,
		SuggestMinChars:   cfg.Suggest.MinChars,
		ExportDir:         cfg.UI.ExportDir,
		ExportFormat:      cfg.UI.ExportFormat,
		WelcomeDialog:     cfg.UI.WelcomeDialog,
		Logger:            logger,
	}
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(ctx context.Context, cfg *config.Config, args cli.Args, client *api.Client, logger *zap.Logger) error {
	toasts := components.NewToastManager(cfg.ToastDuration())
	dialogs := components.NewDialogState()

	opts := sessionOptions(cfg, logger)
	opts.Notifier = toasts
	opts.Dialogs = dialogs
	sess := session.New(client, opts)

	m := chat.New(sess, chat.Deps{
		Theme:   styles.NewTheme(cfg.UI.Theme),
		Toasts:  toasts,
		Dialogs: dialogs,
		Logger:  logger,
		BaseURL: cfg.Server.BaseURL,
		Context: ctx,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	sess.SetListener(chat.Listener(p))
	sess.Start()

	if path := cfg.Path(); path != "" {
		watchConfig(ctx, path, args, p, logger)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// watchConfig forwards config file edits to the running program.
func watchConfig(ctx context.Context, path string, args cli.Args, p *tea.Program, logger *zap.Logger) {
	err := config.Watch(ctx, path, config.WatchOptions{
		OnChange: func(cfg *config.Config) {
			if err := applyFlags(cfg, args); err != nil {
				p.Send(chat.ConfigErrorMsg{Err: err})
				return
			}
			logger.Info("config reloaded", zap.String("path", path))
			p.Send(chat.ConfigReloadedMsg{
				Features:      cfg.FeatureSet(),
				ExportDir:     cfg.UI.ExportDir,
				ExportFormat:  cfg.UI.ExportFormat,
				ToastDuration: cfg.ToastDuration(),
				Theme:         cfg.UI.Theme,
			})
		},
		OnError: func(err error) {
			logger.Warn("config reload failed", zap.Error(err))
			p.Send(chat.ConfigErrorMsg{Err: err})
		},
	})
	if err != nil {
		logger.Debug("config watch disabled", zap.String("path", path), zap.Error(err))
	}
}

// =============================================================================
// LINE MODE
// =============================================================================

func runChat(ctx context.Context, cfg *config.Config, args cli.Args, client *api.Client, logger *zap.Logger) error {
	dialogs := cli.NewConsoleDialogs(os.Stdout, cfg.Variant().Welcome())

	opts := sessionOptions(cfg, logger)
	opts.Notifier = cli.NewConsoleNotifier(os.Stderr, args.Quiet)
	opts.Dialogs = dialogs
	sess := session.New(client, opts)

	c := &cli.Chat{
		Session:  sess,
		Dialogs:  dialogs,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Markdown: markdown(false),
		Logger:   logger,
		Progress: sess.Features().Progress && cli.IsStderrTTY(),
	}
	sess.SetListener(c.Listener())

	historyDir, err := config.ConfigDir()
	if err != nil {
		logger.Debug("chat history disabled", zap.Error(err))
		historyDir = ""
	}
	return c.Run(ctx, historyDir)
}

// =============================================================================
// ONE-SHOT COMMANDS
// =============================================================================

func runOneShot(ctx context.Context, cmd cli.Command, cfg *config.Config, args cli.Args, client *api.Client, logger *zap.Logger) error {
	r := &cli.Runner{
		Backend:  client,
		Out:      os.Stdout,
		Err:      os.Stderr,
		JSON:     args.JSON,
		Markdown: markdown(args.JSON),
		MinChars: cfg.Suggest.MinChars,
		Logger:   logger,
	}

	switch cmd {
	case cli.CmdAsk:
		return r.Ask(ctx, args.Text)
	case cli.CmdClear:
		return r.Clear(ctx)
	case cli.CmdFeedback:
		return r.Feedback(ctx, args.Text)
	case cli.CmdSuggest:
		return r.Suggest(ctx, args.Text, args.Static || !cfg.Suggest.Dynamic)
	}
	return fmt.Errorf("unsupported command %s", cmd)
}

// markdown returns a renderer for terminal output, or nil for pipes and
// JSON mode.
func markdown(jsonMode bool) *cli.Renderer {
	if jsonMode || !cli.IsStdoutTTY() {
		return nil
	}
	return cli.NewRenderer(cli.GlamourStyle(), cli.TerminalWidth())
}
