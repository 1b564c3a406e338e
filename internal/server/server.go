// Package server assembles the HTTP surface of the notes service.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"notesapi/internal/config"
	mcpserver "notesapi/internal/mcp"
	"notesapi/internal/notes"

	"github.com/mark3labs/mcp-go/server"
)

// NewRouter wires the note routes, the health checks and, when enabled,
// the MCP endpoint behind the request-log middleware.
func NewRouter(svc *notes.Service, log *slog.Logger, enableMCP bool) http.Handler {
	mux := http.NewServeMux()

	notes.NewHandler(svc, log).Register(mux)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "alive"})
	})
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"ping": "pong!"})
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			log.Warn("health check failed", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	if enableMCP {
		mcpHTTP := server.NewStreamableHTTPServer(mcpserver.NewServer(svc))
		mux.Handle("POST /mcp", mcpHTTP)
		mux.Handle("GET /mcp", mcpHTTP)
		mux.Handle("DELETE /mcp", mcpHTTP)
	}

	return withRequestLog(log, mux)
}

// New returns an http.Server for h configured from cfg
func New(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
