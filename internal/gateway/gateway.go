// Package gateway exposes the HTTP surface: job CRUD, health, and
// Prometheus metrics.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/flemzord/croned/internal/job"
)

// Config holds HTTP gateway configuration.
type Config struct {
	Bind         string        `yaml:"bind"`
	AuthToken    string        `yaml:"auth_token"` // empty disables auth on /jobs
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Defaults fills zero values with sensible defaults.
func (c *Config) Defaults() {
	if c.Bind == "" {
		c.Bind = "127.0.0.1:8080"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
}

// Gateway is the HTTP server for the job CRUD API.
type Gateway struct {
	config    Config
	store     job.Store
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time
}

// New creates a Gateway serving the given job store.
func New(cfg Config, store job.Store, logger *slog.Logger) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("gateway: nil job store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Defaults()

	if _, err := net.ResolveTCPAddr("tcp", cfg.Bind); err != nil {
		return nil, errors.New("gateway: invalid bind address: " + cfg.Bind)
	}

	return &Gateway{config: cfg, store: store, logger: logger}, nil
}

// Start begins serving. It returns once the listener is bound; serving
// continues on a background goroutine.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway: server error", "error", err)
		}
	}()

	g.logger.Info("gateway: listening", "bind", g.config.Bind)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}
