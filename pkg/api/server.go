// Package api wires the derivation engine into the HTTP server.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/performance-portal/goldenpath/pkg/logging"
	"github.com/performance-portal/goldenpath/pkg/server"
	"github.com/performance-portal/goldenpath/pkg/version"
)

const name = "goldenpath-api"

// Serve starts the API server and blocks until shutdown.
// It configures logging, registers the bundle endpoint, and handles graceful
// shutdown. Returns an error if the server fails to start or encounters a
// fatal error.
func Serve(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version.Version)
	slog.Info("starting",
		"name", name,
		"version", version.Version,
		"commit", version.Commit,
		"date", version.Date,
	)

	r := map[string]http.HandlerFunc{
		"/v1/bundle": HandleBundle,
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version.Version),
		server.WithHandler(r),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
