package rest

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	GetOrCreateGame(ctx context.Context, id string) (*entity.Game, error)
	RestartGame(ctx context.Context, id string) (*entity.Game, error)

	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame

	page   *template.Template
	router chi.Router
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
		page:   loadPageTemplate(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.logRequest)

	r.Get("/ping", pingHandler)

	r.Get("/", server.index)
	r.Post("/play", server.play)
	r.Post("/jump", server.jump)
	r.Post("/new", server.restart)

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", server.apiCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.apiGet)
			r.Post("/play", server.apiPlay)
			r.Post("/jump", server.apiJump)
		})
	})

	server.router = r

	return server
}

// Handler - returns the routed handler, used directly by tests.
func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP on port until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
