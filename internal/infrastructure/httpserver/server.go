// Package httpserver exposes the Postmark webhook and health
// endpoints.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"

	"maillet-agent/internal/application/port/input"
	"maillet-agent/internal/application/port/output"
)

type Server struct {
	processor input.RequestProcessor
	logger    output.LoggerPort
	router    chi.Router
}

func NewServer(processor input.RequestProcessor, log output.LoggerPort) *Server {
	s := &Server{
		processor: processor,
		logger:    log,
	}

	accessLog := httplog.NewLogger("maillet-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(accessLog))
	r.Post("/postmark-webhook", s.handleWebhook)
	r.Get("/health", s.handleHealth)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
