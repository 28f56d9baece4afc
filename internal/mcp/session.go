package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/opponent"
	"github.com/peterkuimelis/frontline/internal/view"
)

// AgentPlayer is the seat the MCP client plays. The scripted opponent
// always takes the other one.
const AgentPlayer = 0

// DecisionType identifies what kind of decision the match is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

var (
	ErrNoSession   = errors.New("no such match")
	ErrMatchOver   = errors.New("match is over")
	ErrBadIndex    = errors.New("action index out of range")
	ErrSessionBusy = errors.New("another call is in progress for this match")
)

// PendingDecision represents a decision the match is waiting for.
type PendingDecision struct {
	Type    DecisionType      `json:"type"`
	Player  int               `json:"player"`
	State   *view.StateView   `json:"state"`
	Actions []view.ActionView `json:"actions,omitempty"`
}

// ToolResponse is the JSON envelope returned by the match tools.
type ToolResponse struct {
	MatchID  string            `json:"match_id"`
	Events   []view.EventView  `json:"events"`
	State    *view.StateView   `json:"state,omitempty"`
	Actions  []view.ActionView `json:"actions,omitempty"`
	GameOver bool              `json:"game_over"`
	Winner   int               `json:"winner"`
	Result   string            `json:"result,omitempty"`
}

// Options configure new sessions.
type Options struct {
	Catalog  *game.Catalog
	Seed     int64 // 0 for random
	MaxTurns int
	AIDelay  time.Duration
}

// Session holds the state of a single match played over MCP.
type Session struct {
	ID string

	match  *game.Match
	ctrl   *Controller
	cancel context.CancelFunc
	done   chan struct{}

	pendingCh chan *PendingDecision
	// currentPending is the decision the agent is answering. It is nil
	// between handing an index to the match and receiving the next one.
	currentPending *PendingDecision
	busy           sync.Mutex // serializes tool calls on this session

	mu       sync.Mutex
	events   []view.EventView
	gameOver bool
	winner   int
	result   string
}

// Store keeps every running session, keyed by match ID.
type Store struct {
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore(opts Options, logger *zap.Logger) *Store {
	if opts.Catalog == nil {
		opts.Catalog = game.DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{opts: opts, logger: logger, sessions: make(map[string]*Session)}
}

// Catalog returns the catalog new matches are built from.
func (st *Store) Catalog() *game.Catalog {
	return st.opts.Catalog
}

// Start builds a match against the scripted opponent, runs it in the
// background and waits for the agent's first decision.
func (st *Store) Start(ctx context.Context, agent, ai [2]game.Faction, seed int64) (*ToolResponse, error) {
	if seed == 0 {
		seed = st.opts.Seed
	}
	rng := game.NewRand(seed)
	state, err := game.BuildMatch(rng, st.opts.Catalog, agent, ai, true)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		pendingCh: make(chan *PendingDecision, 1),
		done:      make(chan struct{}),
		winner:    -1,
	}
	sess.ctrl = NewController(AgentPlayer, sess)

	logger := log.NewZapLogger(st.logger.With(zap.String("match_id", sess.ID)))
	sess.match = game.NewMatchFromState(state, game.MatchConfig{
		Logger:   logger,
		MaxTurns: st.opts.MaxTurns,
	}, sess.ctrl, opponent.NewController(st.opts.AIDelay))

	runCtx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	st.logger.Info("match started",
		zap.String("match_id", sess.ID),
		zap.Stringers("agent_factions", agent[:]),
		zap.Stringers("ai_factions", ai[:]),
	)

	go sess.run(runCtx, st.logger)

	sess.busy.Lock()
	resp, err := sess.waitForPending(ctx)
	sess.busy.Unlock()
	if err != nil {
		// The caller never learns the match ID, so nobody could resume it.
		_ = st.End(sess.ID)
		return nil, err
	}
	return resp, nil
}

// Get returns a session by ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSession, id)
	}
	return sess, nil
}

// End abandons a match and forgets it.
func (st *Store) End(id string) error {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSession, id)
	}
	sess.cancel()
	<-sess.done
	st.logger.Info("match ended", zap.String("match_id", id))
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// CloseAll ends every session.
func (st *Store) CloseAll() {
	st.mu.Lock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	st.mu.Unlock()
	for _, id := range ids {
		_ = st.End(id)
	}
}

// run plays the match to the end and publishes the final decision.
func (s *Session) run(ctx context.Context, logger *zap.Logger) {
	defer close(s.done)

	winner, err := s.match.Run(ctx)
	result := s.match.Outcome.Result
	if err != nil {
		result = fmt.Sprintf("error: %v", err)
		if !errors.Is(err, context.Canceled) {
			logger.Warn("match stopped", zap.String("match_id", s.ID), zap.Error(err))
		}
	}

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	s.mu.Unlock()

	final := &PendingDecision{
		Type:   DecisionGameOver,
		Player: winner,
		State:  view.BuildStateView(s.match.State, AgentPlayer),
	}
	select {
	case s.pendingCh <- final:
	case <-ctx.Done():
	}
}

// TakeAction submits the agent's choice and waits for the next decision.
func (s *Session) TakeAction(ctx context.Context, index int) (*ToolResponse, error) {
	if !s.busy.TryLock() {
		return nil, ErrSessionBusy
	}
	defer s.busy.Unlock()

	// An earlier call may have been cancelled after its index was taken.
	// Catch up with the decision that followed before checking this one.
	if s.currentPending == nil {
		if _, err := s.nextPending(ctx); err != nil {
			return nil, err
		}
	}
	pending := s.currentPending
	if pending.Type == DecisionGameOver {
		return nil, ErrMatchOver
	}
	if index < 0 || index >= len(pending.Actions) {
		return nil, fmt.Errorf("%w: %d, must be 0-%d", ErrBadIndex, index, len(pending.Actions)-1)
	}

	select {
	case s.ctrl.responseCh <- index:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = nil
	return s.waitForPending(ctx)
}

// Snapshot returns the latest known state, accumulated events and pending
// decision without submitting anything.
func (s *Session) Snapshot() *ToolResponse {
	s.busy.Lock()
	defer s.busy.Unlock()

	if s.currentPending == nil {
		select {
		case p := <-s.pendingCh:
			s.currentPending = p
		default:
		}
	}

	resp := &ToolResponse{MatchID: s.ID, Events: s.drainEvents()}
	s.mu.Lock()
	resp.GameOver = s.gameOver
	resp.Winner = s.winner
	resp.Result = s.result
	s.mu.Unlock()

	if p := s.currentPending; p != nil {
		resp.State = p.State
		if p.Type == DecisionChooseAction {
			resp.Actions = p.Actions
		}
	}
	return resp
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *Session) appendEvent(ev view.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *Session) drainEvents() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []view.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the match,
// then builds a ToolResponse with accumulated events + the pending decision.
// Callers hold s.busy.
func (s *Session) waitForPending(ctx context.Context) (*ToolResponse, error) {
	pending, err := s.nextPending(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ToolResponse{
		MatchID: s.ID,
		Events:  s.drainEvents(),
		State:   pending.State,
		Winner:  -1,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Actions = pending.Actions
	return resp, nil
}

// nextPending blocks until the match publishes its next decision and makes
// it current. Callers hold s.busy.
func (s *Session) nextPending(ctx context.Context) (*PendingDecision, error) {
	select {
	case p := <-s.pendingCh:
		s.currentPending = p
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// respondJSON marshals a value to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
