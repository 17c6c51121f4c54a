// mosdac-stub - A local stand-in for the MOSDAC Chatbot service.
//
// It answers /api/ask, /api/clear and /api/feedback with canned replies,
// which is enough to drive every front end without the real server.
//
// Usage:
//
//	mosdac-stub [--addr :5000] [--origin http://localhost:3000] [--delay 500ms]
//
// MOSDAC_STUB_ADDR sets the listen address when --addr is not given.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jeranaias/mosdac-chat/internal/api/apitest"
	"github.com/jeranaias/mosdac-chat/internal/cli"
	"github.com/jeranaias/mosdac-chat/internal/logging"
)

const (
	defaultAddr     = ":5000"
	shutdownTimeout = 5 * time.Second
)

func main() {
	p := cli.NewArgParser(os.Args[1:])
	addr := p.FlagOrDefault("addr", os.Getenv("MOSDAC_STUB_ADDR"))
	if addr == "" {
		addr = defaultAddr
	}
	origin := p.FlagOrDefault("origin", "*")

	var delay time.Duration
	if v := p.Flag("delay"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --delay: %v\n", err)
			os.Exit(2)
		}
		delay = d
	}

	logger, err := logging.New("info", logging.PathStderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, addr, newRouter(origin, delay, logger), logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func newRouter(origin string, delay time.Duration, logger *zap.Logger) http.Handler {
	backend := apitest.NewBackend()
	if delay > 0 {
		backend.OnAsk(func(query string) apitest.Reply {
			return apitest.CannedAnswer(query).After(delay)
		})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	backend.RegisterRoutes(r)
	return r
}

// requestLogger logs one line per request with zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}

// serve runs the HTTP server until ctx is done, then shuts it down.
func serve(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
