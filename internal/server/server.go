// Package server implements the range data source: a websocket server
// answering catalog queries, session starts, hand requests and answer
// checks against a loaded range book.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/rangedrill/internal/ranges"
)

// Server represents the websocket practice server.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	book        *ranges.Book
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
}

// NewServer creates a new practice server for a loaded range book.
func NewServer(addr string, book *ranges.Book, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local practice tool, clients connect from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		book:        book,
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting practice server", "addr", s.addr)
		err := s.httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Stop()
	})
	return g.Wait()
}

// Stop shuts the server down and closes every connection.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles websocket upgrade requests.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, NewService(s.book, s.logger))
	if !s.track(client) {
		_ = client.Close()
		return
	}
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.untrack(client)
	}()
}

// track registers a connection, refusing it when the server is already
// shutting down so the send cannot block after run() has exited.
func (s *Server) track(c *Connection) bool {
	select {
	case s.register <- c:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// untrack removes a connection, returning immediately during shutdown.
func (s *Server) untrack(c *Connection) {
	select {
	case s.unregister <- c:
	case <-s.ctx.Done():
	}
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
