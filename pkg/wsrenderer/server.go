package wsrenderer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// ServerConfig controls the chi router Server builds, grounded on the
// teacher's ServerConfig (pkg/server/config.go) pared down to what an
// upgrade-only endpoint needs.
type ServerConfig struct {
	Path            string // websocket upgrade path, default "/ws"
	HealthPath      string // health-check path, default "/healthz"
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
	SessionConfig   Config
	Logger          *slog.Logger
}

// DefaultServerConfig mirrors the teacher's DefaultServerConfig pattern:
// every zero field is filled with a sane default by NewServer.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Path:            "/ws",
		HealthPath:      "/healthz",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		SessionConfig:   DefaultConfig(),
	}
}

// Server is a chi-routed HTTP server exposing the websocket handshake
// endpoint and a health check, grounded on the teacher's use of chi as the
// outer router for its websocket handler (pkg/server/server.go).
type Server struct {
	cfg      ServerConfig
	upgrader websocket.Upgrader
	logger   *slog.Logger
	router   chi.Router

	// OnConnect is called with each newly-mounted Session; callers use it
	// to engine.Mount a root View against the session and call
	// session.Start(). Required — a Server with no OnConnect accepts
	// connections and immediately closes them.
	OnConnect func(*Session)
}

// NewServer builds a Server from cfg, filling unset fields with defaults.
func NewServer(cfg ServerConfig) *Server {
	defaults := DefaultServerConfig()
	if cfg.Path == "" {
		cfg.Path = defaults.Path
	}
	if cfg.HealthPath == "" {
		cfg.HealthPath = defaults.HealthPath
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = defaults.ReadBufferSize
	}
	if cfg.WriteBufferSize == 0 {
		cfg.WriteBufferSize = defaults.WriteBufferSize
	}
	if cfg.CheckOrigin == nil {
		cfg.CheckOrigin = func(r *http.Request) bool { return true }
	}
	if cfg.SessionConfig == (Config{}) {
		cfg.SessionConfig = defaults.SessionConfig
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Get(cfg.HealthPath, s.handleHealth)
	r.Get(cfg.Path, s.handleUpgrade)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler by delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("wsrenderer: upgrade failed", "error", err)
		return
	}

	session := NewSession(conn, s.cfg.SessionConfig, s.logger)

	if s.OnConnect == nil {
		s.logger.Warn("wsrenderer: no OnConnect handler registered, closing connection")
		session.Close()
		return
	}
	s.OnConnect(session)
}
