package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/acts/pkg/config"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/server/middleware"
	"github.com/doodlesbykumbi/acts/pkg/server/store"
)

type Server struct {
	// Router serves operational routes; API serves the authenticated REST API.
	Router      *mux.Router
	API         *mux.Router
	DB          *gorm.DB
	Mediator    *mediator.Mediator
	HealthStore store.HealthStore
	Config      *config.ActsConfig
	Logger      zerolog.Logger
	srv         *http.Server
}

// Options configures NewServer.
type Options struct {
	Host      string
	Port      string
	JWTSecret []byte
}

func NewServer(
	m *mediator.Mediator,
	healthStore store.HealthStore,
	db *gorm.DB,
	cfg *config.ActsConfig,
	log zerolog.Logger,
	opts Options,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	router.Use(middleware.RequestID, middleware.Metrics)

	api := router.NewRoute().Subrouter()
	api.Use(middleware.NewJWTAuthenticator(opts.JWTSecret, cfg.AuthRequired).Middleware)

	var handler http.Handler = router
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.CORSAllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.RequestIDHeader}),
			handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
		)(handler)
	}
	accessLog := log.With().Str("component", "http").Logger()
	handler = handlers.CombinedLoggingHandler(accessLog, handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log: log}))(handler)

	srv := &http.Server{
		Handler:      handler,
		Addr:         net.JoinHostPort(opts.Host, opts.Port),
		WriteTimeout: cfg.ServerTimeout(),
		ReadTimeout:  cfg.ServerTimeout(),
	}

	return &Server{
		Router:      router,
		API:         api,
		DB:          db,
		Mediator:    m,
		HealthStore: healthStore,
		Config:      cfg,
		Logger:      log,
		srv:         srv,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	s.Logger.Info().Str("addr", s.srv.Addr).Strs("handlers", s.Mediator.Registered()).Msg("listening")
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type recoveryLogger struct {
	log zerolog.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.log.Error().Str("component", "http").Msg(fmt.Sprint(v...))
}
