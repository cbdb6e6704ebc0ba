// Package web serves the runner to browsers over a websocket. The
// server owns the simulation; the page only draws snapshots and sends
// intents.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

const (
	readLimit    = 4096
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// DBPath is the path to the scores database. Empty disables persistence.
	DBPath string

	// TickRate is the frame rate of every session.
	TickRate int

	// Seed seeds every session. Zero uses the clock.
	Seed int64

	// Game is the configuration every session plays with.
	Game config.DinoConfig
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:  ":8080",
		DBPath:   storage.DefaultPath,
		TickRate: 60,
		Game:     config.DefaultDinoConfig(),
	}
}

// Server streams one independent game per websocket connection. All
// connections share the score database.
type Server struct {
	config   ServerConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	ctx    context.Context
	cancel context.CancelFunc
	conns  sync.WaitGroup
	active atomic.Int64
	nextID atomic.Int64
}

// NewServer creates a web server. A database that cannot be opened is
// logged and play continues without persistence.
func NewServer(cfg ServerConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "dino-web",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
			store = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Any page may embed the game.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Sessions returns the number of connected players.
func (s *Server) Sessions() int {
	return int(s.active.Load())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.conns.Add(1)
	defer s.conns.Done()
	s.active.Add(1)
	defer s.active.Add(-1)

	id := s.nextID.Add(1)
	logger := s.logger.With("session", id, "remote", r.RemoteAddr)
	logger.Info("session started")

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += id - 1
	}

	sess := NewSession(s.config.Game, seed, s.store, logger)
	err = s.pump(conn, sess)
	logger.Info("session ended", "error", err)
}

// pump drives one connection until either side closes it.
func (s *Server) pump(conn *websocket.Conn, sess *Session) error {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	c := &client{conn: conn}
	defer conn.Close()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := c.send(MsgState, sess.Snapshot()); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(4)

	// Frame clock
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(time.Second / time.Duration(s.config.TickRate))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap, _, changed := sess.Frame()
				if !changed {
					continue
				}
				if err := c.send(MsgState, snap); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Spawn clock
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.config.Game.Spawn.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sess.Spawn()
			}
		}
	}()

	// Keepalive
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Unblock the reader on shutdown or a failed write.
	go func() {
		defer wg.Done()
		<-ctx.Done()
		_ = conn.Close()
	}()

	err := s.readLoop(ctx, c, sess)
	cancel()
	wg.Wait()

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) readLoop(ctx context.Context, c *client, sess *Session) error {
	for {
		_, b, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		m, err := DecodeClient(b)
		if err == nil {
			_, err = sess.Handle(m)
		}
		if err != nil {
			if sendErr := c.send(MsgError, ErrorPayload{Message: err.Error()}); sendErr != nil {
				return sendErr
			}
		}
	}
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.Shutdown()
		return err
	case <-done:
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown closes every session and stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.cancel()
	s.conns.Wait()

	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

// client serialises writes; gorilla/websocket allows one writer at a time.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(t string, payload any) error {
	b, err := Encode(t, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}
