package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/hoomehr/perxplor/internal/config"
	"github.com/hoomehr/perxplor/internal/game"
	"github.com/hoomehr/perxplor/internal/storage"
	"github.com/hoomehr/perxplor/internal/treasure"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.perxplor/host_key.
	HostKeyPath string

	// ConfigPath is an explicit settings file; empty uses the usual
	// search order.
	ConfigPath string

	// CatalogPath is an explicit treasure catalog; empty uses the usual
	// search order.
	CatalogPath string

	// DBPath overrides the settings' progress database path when set.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves exploration sessions over SSH via Wish. The SSH
// username is the player identity: connecting twice with the same name
// continues the same progress.
type SSHServer struct {
	config   SSHServerConfig
	settings config.Settings
	catalog  *treasure.Catalog
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "perxplor-ssh",
	})

	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load settings: %w", err)
	}
	if cfg.DBPath != "" {
		settings.Storage.Path = cfg.DBPath
	}

	catalog, err := treasure.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load treasure catalog: %w", err)
	}

	// Open storage
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		// Continue without storage; sessions run memory-only
	}

	srv := &SSHServer{
		config:   cfg,
		settings: settings,
		catalog:  catalog,
		store:    store,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".perxplor", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session. The
// connection's username becomes the player identity.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	identity := sshSession.User()
	if identity == "" {
		s.logger.Warn("connection without a username rejected",
			"remote", sshSession.RemoteAddr().String())
		return nil, nil
	}

	// Avoid the typed-nil trap when storage is unavailable.
	var store game.Store
	if s.store != nil {
		store = s.store
	}

	engine, err := NewSession(s.settings, s.catalog, store, identity, s.logger)
	if err != nil {
		s.logger.Error("cannot open session", "user", identity, "error", err)
		return nil, nil
	}

	// The quit key closes the engine, but a dropped connection or idle
	// timeout never reaches it; the session context covers those.
	engine.CloseWhenDone(sshSession.Context())

	model := NewModel(engine, s.settings.Animation.FPS, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
