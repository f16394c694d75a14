// Package httpapi exposes the to-do service over HTTP/JSON: routing,
// identity extraction and status-code mapping live here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/todovault/internal/logging"
	"github.com/dmitrijs2005/todovault/internal/server/services"
)

type HTTPServer struct {
	address   string
	logger    logging.Logger
	todos     *services.TodoService
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, ts *services.TodoService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		todos:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router builds the chi route tree. Split out from Run so tests can drive
// it through httptest without binding a port.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestID)

	r.Get("/health", s.handleHealth)

	r.Route("/todos", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/", s.handleListTodos)
		r.Post("/", s.handleCreateTodo)

		r.Route("/{todoId}", func(r chi.Router) {
			r.Patch("/", s.handleUpdateTodo)
			r.Delete("/", s.handleDeleteTodo)
			r.Post("/attachment", s.handleGenerateUploadURL)
		})
	})

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
