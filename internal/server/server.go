package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lockhart/holdem/internal/game"
	"github.com/lockhart/holdem/internal/randutil"
)

// Server hosts tables over websockets. Each table runs on its own
// Runner goroutine; the server only routes messages and fans state
// updates back out, so tables never share mutable state.
type Server struct {
	cfg      *Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	runners  map[string]*Runner

	mu    sync.RWMutex
	conns map[*Connection]bool
}

// New builds a server and its tables from configuration. seed feeds
// each table's deck RNG; pass a fixed seed only in tests.
func New(cfg *Config, seed int64, clock quartz.Clock, logger *log.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		runners: make(map[string]*Runner),
		conns:   make(map[*Connection]bool),
	}

	for i, tc := range cfg.Tables {
		gameCfg, err := tc.GameConfig()
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tc.Name, err)
		}
		table, err := game.NewTable(gameCfg, randutil.New(seed+int64(i)), logger)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tc.Name, err)
		}
		runner := NewRunner(tc.Name, table, clock, logger)
		runner.OnUpdate(s.broadcast)
		s.runners[tc.Name] = runner
	}
	return s, nil
}

// Run serves websocket and HTTP endpoints until the context is
// cancelled, then closes every connection.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/state", s.handleState)

	httpServer := &http.Server{Addr: s.cfg.Server.Addr(), Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	for _, runner := range s.runners {
		g.Go(func() error { return runner.Run(ctx) })
	}
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)

		s.mu.Lock()
		for conn := range s.conns {
			_ = conn.Close()
		}
		s.mu.Unlock()
		return ctx.Err()
	})
	return g.Wait()
}

// Runner returns the runner for a table name, defaulting to the only
// table when name is empty and exactly one exists.
func (s *Server) Runner(name string) *Runner {
	if name == "" && len(s.runners) == 1 {
		for _, r := range s.runners {
			return r
		}
	}
	return s.runners[name]
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn := NewConnection(ws, s.logger)

	s.mu.Lock()
	s.conns[conn] = true
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("client connected", "total", total)

	go conn.writePump()
	conn.readPump(s.handleMessage)

	s.dropConnection(conn)
}

func (s *Server) dropConnection(conn *Connection) {
	s.mu.Lock()
	delete(s.conns, conn)
	total := len(s.conns)
	s.mu.Unlock()

	player, table := conn.Identity()
	if player != "" {
		if runner := s.Runner(table); runner != nil {
			if err := runner.Leave(player); err != nil {
				s.logger.Debug("leave on disconnect", "player", player, "error", err)
			}
		}
	}
	_ = conn.Close()
	s.logger.Info("client disconnected", "total", total)
}

// handleMessage dispatches one inbound frame. Called from the
// connection's read goroutine; the runner serializes table access.
func (s *Server) handleMessage(conn *Connection, msg ClientMessage) {
	runner := s.Runner(msg.Table)
	if runner == nil {
		_, table := conn.Identity()
		runner = s.Runner(table)
	}
	if runner == nil {
		conn.Send(ServerMessage{Type: TypeError, Message: "unknown table"})
		return
	}

	switch msg.Type {
	case TypeJoin:
		if msg.Player == "" {
			conn.Send(ServerMessage{Type: TypeError, Message: "join requires a player name"})
			return
		}
		if err := runner.Join(msg.Player, msg.Chips); err != nil {
			conn.Send(errorMessage(err))
			return
		}
		conn.bind(msg.Player, runner.Name)
		conn.Send(ServerMessage{Type: TypeJoined, Table: runner.Name})

	case TypeLeave:
		player, _ := conn.Identity()
		if err := runner.Leave(player); err != nil {
			conn.Send(errorMessage(err))
		}

	case TypeRebuy:
		player, _ := conn.Identity()
		if err := runner.Rebuy(player, msg.Chips); err != nil {
			conn.Send(errorMessage(err))
		}

	case TypeStart:
		if _, err := runner.StartHand(); err != nil {
			conn.Send(errorMessage(err))
		}

	case TypeAction:
		player, _ := conn.Identity()
		action, err := game.ParseAction(msg.Action)
		if err != nil {
			conn.Send(errorMessage(err))
			return
		}
		if _, err := runner.Action(player, action, msg.Amount); err != nil {
			conn.Send(errorMessage(err))
		}

	case TypeState:
		state, err := runner.State()
		if err != nil {
			conn.Send(errorMessage(err))
			return
		}
		conn.Send(ServerMessage{Type: TypeStateUpdate, Table: runner.Name, State: &state})

	default:
		conn.Send(ServerMessage{Type: TypeError, Message: fmt.Sprintf("unknown message type %q", msg.Type)})
	}
}

// broadcast fans a table update out to every connection on that table:
// the shared public state to all, each player's own hole cards to them
// alone, and the result once the hand is settled.
func (s *Server) broadcast(u Update) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.conns {
		player, table := conn.Identity()
		if table != u.Table {
			continue
		}
		state := u.State
		conn.Send(ServerMessage{Type: TypeStateUpdate, Table: u.Table, State: &state})
		if cards, ok := u.Hole[player]; ok && len(cards) > 0 {
			conn.Send(ServerMessage{Type: TypeHoleCards, Table: u.Table, Cards: cards})
		}
		if u.Result != nil {
			conn.Send(ServerMessage{Type: TypeResult, Table: u.Table, Result: u.Result})
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleState serves the public state of a table as JSON, for polling
// clients that do not hold a websocket.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	runner := s.Runner(r.URL.Query().Get("table"))
	if runner == nil {
		http.Error(w, "unknown table", http.StatusNotFound)
		return
	}
	state, err := runner.State()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(state)
}
