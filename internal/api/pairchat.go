package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/pairchat/go-pairchat/internal/config"
	"github.com/pairchat/go-pairchat/internal/database"
	"github.com/pairchat/go-pairchat/internal/server"
)

type PairChatApp struct {
	log            *log.Logger
	db             database.PairChatRepository
	mux            *http.Server
	cs             *server.ChatServer
	allowedOrigins []string
}

func NewPairChatApp(mux *http.ServeMux, logger *log.Logger, cs *server.ChatServer,
	db database.PairChatRepository, cfg *config.Config) *PairChatApp {
	s := &PairChatApp{
		log:            logger,
		db:             db,
		cs:             cs,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /api/users", s.listUsers)
	mux.HandleFunc("GET /api/messages", s.getMessages)
	mux.HandleFunc("GET /api/healthz", s.healthCheck)
	mux.HandleFunc("GET /ws", s.serveWs)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *PairChatApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *PairChatApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
