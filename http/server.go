package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ayumu-h/curio"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxExtractions caps concurrent extraction pipelines; each one
// holds a page body in memory and two outbound connections.
const DefaultMaxExtractions = 8

// Server exposes the extraction pipeline and the cataloguing CRUD over
// HTTP. All request and response bodies are JSON.
type Server struct {
	server   *http.Server
	router   chi.Router
	listener net.Listener

	Addr   string
	Logger *slog.Logger

	MetadataService curio.MetadataService
	PreviewService  curio.PreviewService
	CabinetService  curio.CabinetService
	ItemService     curio.ItemService
	NoteService     curio.NoteService

	extractSem *semaphore.Weighted
}

// NewServer creates a Server with its routes registered. Services are
// assigned by the caller before Open.
func NewServer() *Server {
	s := &Server{
		router:     chi.NewRouter(),
		Logger:     slog.Default(),
		extractSem: semaphore.NewWeighted(DefaultMaxExtractions),
	}

	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/preview", s.handlePreview)

		r.Route("/cabinets", func(r chi.Router) {
			r.Post("/", s.handleCabinetCreate)
			r.Get("/", s.handleCabinetList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleCabinetGet)
				r.Patch("/", s.handleCabinetUpdate)
				r.Delete("/", s.handleCabinetDelete)
				r.Post("/items", s.handleItemCreate)
				r.Get("/items", s.handleItemList)
			})
		})

		r.Route("/items/{id}", func(r chi.Router) {
			r.Get("/", s.handleItemGet)
			r.Patch("/", s.handleItemUpdate)
			r.Delete("/", s.handleItemDelete)
			r.Post("/notes", s.handleNoteCreate)
			r.Get("/notes", s.handleNoteList)
		})

		r.Route("/notes/{id}", func(r chi.Router) {
			r.Get("/", s.handleNoteGet)
			r.Patch("/", s.handleNoteUpdate)
			r.Delete("/", s.handleNoteDelete)
		})
	})

	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() error {
	listener, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server terminated", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL the server listens on. Valid after Open.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
