// Package web serves the browser front end: a static page, the catalog
// API and a websocket that runs one match per connection.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/opponent"
	"github.com/peterkuimelis/frontline/internal/view"
)

//go:embed static
var staticFiles embed.FS

// Options tune the matches the server runs.
type Options struct {
	Seed     int64 // default seed when the browser sends none (0 for random)
	AIDelay  time.Duration
	MaxTurns int
}

// Server is the frontline web UI server.
type Server struct {
	catalog *game.Catalog
	logger  *zap.Logger
	opts    Options
	mux     *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(catalog *game.Catalog, logger *zap.Logger, opts Options) *Server {
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog: catalog,
		logger:  logger,
		opts:    opts,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f)
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view.BuildCatalogView(s.catalog)); err != nil {
		s.logger.Warn("encode catalog", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	logger := s.logger.With(zap.String("conn_id", uuid.NewString()))

	// The browser opens with a start message naming the factions.
	var start view.ClientMessage
	if err := wsjson.Read(ctx, conn, &start); err != nil {
		logger.Debug("read start message", zap.Error(err))
		return
	}
	if start.Type != "start" {
		conn.Close(websocket.StatusPolicyViolation, "expected start message")
		return
	}

	match, err := s.newMatch(conn, start, logger)
	if err != nil {
		_ = wsjson.Write(ctx, conn, view.ServerMessage{Type: "error", Result: err.Error()})
		conn.Close(websocket.StatusNormalClosure, "invalid start message")
		return
	}

	logger.Info("match started",
		zap.Stringers("p1_factions", match.State.Players[0].Factions[:]),
		zap.Stringers("p2_factions", match.State.Players[1].Factions[:]),
		zap.Bool("vs_ai", match.State.Players[1].IsAI),
	)

	winner, err := match.Run(ctx)
	if err != nil {
		logger.Info("match aborted", zap.Error(err))
		return
	}

	over := view.ServerMessage{
		Type:   "game_over",
		Winner: &winner,
		Result: match.Outcome.Result,
		State:  view.BuildStateView(match.State, 0),
	}
	if err := wsjson.Write(ctx, conn, over); err != nil {
		logger.Debug("send game_over", zap.Error(err))
		return
	}
	logger.Info("match finished", zap.Int("winner", winner), zap.String("result", match.Outcome.Result))
	conn.Close(websocket.StatusNormalClosure, "game ended")
}

// newMatch seats the browser as Player 1 and either the scripted opponent
// or a second hot-seat controller on the same connection as Player 2.
func (s *Server) newMatch(conn *websocket.Conn, start view.ClientMessage, logger *zap.Logger) (*game.Match, error) {
	p1, err := view.ParseFactionPair(start.Factions)
	if err != nil {
		return nil, err
	}

	seed := start.Seed
	if seed == 0 {
		seed = s.opts.Seed
	}
	rng := game.NewRand(seed)

	var p2 [2]game.Faction
	if len(start.P2Factions) == 0 {
		p2 = game.RandomFactions(rng)
	} else if p2, err = view.ParseFactionPair(start.P2Factions); err != nil {
		return nil, err
	}

	vsAI := start.VsAI == nil || *start.VsAI

	var second game.PlayerController = opponent.NewController(s.opts.AIDelay)
	if !vsAI {
		second = NewController(conn, 1, false)
	}

	match, err := game.NewMatch(game.MatchConfig{
		Catalog:    s.catalog,
		P1Factions: p1,
		P2Factions: p2,
		VsAI:       vsAI,
		Rand:       rng,
		Logger:     log.NewZapLogger(logger),
		MaxTurns:   s.opts.MaxTurns,
	}, NewController(conn, 0, true), second)
	if err != nil {
		return nil, err
	}
	return match, nil
}

// ListenAndServe starts the HTTP server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("frontline web UI listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
