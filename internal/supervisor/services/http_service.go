// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// defaultShutdownTimeout applies when none is configured.
const defaultShutdownTimeout = 10 * time.Second

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server under supervision. Cancelling the
// context triggers Shutdown bounded by the shutdown timeout.
type HTTPServerService struct {
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewHTTPServerService wraps server. addr is only used for logging.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPServerService(server HTTPServer, addr string, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "http-server").Logger(),
	}
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()

	h.logger.Info().Str("addr", h.addr).Msg("HTTP server listening")

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("HTTP server shutting down")

		// The parent context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-done
		return ctx.Err()
	}
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
