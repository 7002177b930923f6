package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/chess-vn/skbclub/internal/content"
	"github.com/chess-vn/skbclub/pkg/logging"
	"github.com/chess-vn/skbclub/pkg/pgn"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Server struct {
	address  string
	upgrader websocket.Upgrader
	router   chi.Router

	config   Config
	sessions sync.Map

	store   *content.Store
	fetcher *content.Fetcher
	rules   pgn.Rules
	now     func() time.Time
}

type payload struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

// NewServer wires the content store and the viewer on top of fsys.
func NewServer(cfg Config, fsys afero.Fs, rules pgn.Rules) *Server {
	srv := &Server{
		address: "0.0.0.0:" + cfg.Port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Public site, any origin may embed the viewer
			},
		},
		config:  cfg,
		store:   content.NewStore(fsys, cfg.ContentRoot),
		fetcher: content.NewFetcher(fsys, cfg.ContentRoot, cfg.FetchTimeout),
		rules:   rules,
		now:     time.Now,
	}
	srv.router = srv.routes()
	return srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthCheck)
	r.Get("/viewer", s.handleViewer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tournaments", s.handleListTournaments)
		r.Get("/tournaments/{tournament}/articles", s.handleListArticles)
		r.Get("/tournaments/{tournament}/articles/{year}/{slug}", s.handleGetArticle)
		r.Get("/tournaments/{tournament}/articles/{year}/{slug}/game", s.handleGetArticleGame)
		r.Get("/agenda/{year}/{month}", s.handleGetAgenda)
		r.Get("/news/latest", s.handleLatestNews)
	})
	return r
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:        s.address,
		Handler:     s.router,
		IdleTimeout: s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server started", zap.String("port", s.config.Port))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Info("server stopped")
	return nil
}

func (s *Server) addSession(session *Session) {
	s.sessions.Store(session.id, session)
}

func (s *Server) removeSession(sessionId string) {
	s.sessions.Delete(sessionId)
}

func (s *Server) activeSessions() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
