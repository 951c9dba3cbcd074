// Package app wires process-wide services for the usodict commands.
package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rcliao/usodict/internal/config"
)

// NewLogger returns the diagnostics logger for one command run and installs it
// as the slog default, which the converter and the entry assembler fall back to
// when they are given no logger. Records go to w; converted entries never do.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
