package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/frontline/internal/log"
)

// DefaultMaxTurns is the safety limit used when MatchConfig.MaxTurns is 0.
const DefaultMaxTurns = 200

// maxRejections bounds how many refused actions in a row a controller may
// submit before the runner gives up on it.
const maxRejections = 10

// PlayerController is the interface that human, scripted and remote players
// implement.
type PlayerController interface {
	// ChooseAction presents the legal actions and waits for the player to
	// pick one. The returned action need not be one of actions; anything
	// Apply refuses is reported and the player is asked again.
	ChooseAction(ctx context.Context, state *MatchState, actions []Action) (Action, error)

	// Notify sends a match event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Catalog    *Catalog   // nil uses DefaultCatalog
	P1Factions [2]Faction // player 1's fused factions
	P2Factions [2]Faction // player 2's fused factions
	VsAI       bool       // player 2 is the scripted opponent
	Seed       int64      // RNG seed (0 for random)
	Rand       Shuffler   // overrides Seed when set
	Logger     log.EventLogger
	MaxTurns   int // stop after this many turns (0 = DefaultMaxTurns)
}

// Match drives a MatchState with two controllers until one side has lost
// DeathLimit heroes or the turn limit is hit.
type Match struct {
	State       *MatchState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	Outcome     Outcome
	ctx         context.Context
	maxTurns    int
}

// NewMatch builds the opening state from cfg and seats p0 and p1.
func NewMatch(cfg MatchConfig, p0, p1 PlayerController) (*Match, error) {
	cat := cfg.Catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	state, err := BuildMatch(rng, cat, cfg.P1Factions, cfg.P2Factions, cfg.VsAI)
	if err != nil {
		return nil, err
	}
	return NewMatchFromState(state, cfg, p0, p1), nil
}

// NewMatchFromState seats p0 and p1 at an existing state. Only the Logger
// and MaxTurns fields of cfg are used.
func NewMatchFromState(state *MatchState, cfg MatchConfig, p0, p1 PlayerController) *Match {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Match{
		State:       state,
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		Outcome:     Outcome{Winner: -1, Loser: -1},
		ctx:         context.Background(),
		maxTurns:    maxTurns,
	}
}

// Run executes the match loop. Returns the winner (0, 1, or -1 for a draw
// or turn limit).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx

	m.log(log.NewMatchStartEvent())
	m.log(log.NewTurnEvent(m.State.Turn, m.State.ActivePlayer, m.State.Active().Name))

	for !m.Outcome.Over {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if m.State.Turn > m.maxTurns {
			m.Outcome = Outcome{
				Over:   true,
				Winner: -1,
				Loser:  -1,
				Result: fmt.Sprintf("Turn limit reached (%d turns)", m.maxTurns),
			}
			m.log(log.NewTieEvent(m.State.Turn, m.State.Phase.String(), m.Outcome.Result))
			break
		}
		if err := m.Step(); err != nil {
			return -1, err
		}
	}

	return m.Outcome.Winner, nil
}

// Step asks the active player for one action and applies it. Refused
// actions are logged and the player is asked again.
func (m *Match) Step() error {
	for rejected := 0; ; rejected++ {
		s := m.State
		tp := s.ActivePlayer
		actions := LegalActions(s)

		chosen, err := m.Controllers[tp].ChooseAction(m.ctx, s, actions)
		if err != nil {
			return err
		}

		next, events, err := Apply(s, chosen)
		if err != nil {
			if !IsRecoverable(err) {
				return err
			}
			m.log(log.NewRejectedEvent(s.Turn, s.Phase.String(), tp, err.Error()))
			if rejected+1 >= maxRejections {
				return fmt.Errorf("player %d: too many rejected actions: %w", tp+1, err)
			}
			continue
		}

		m.State = next
		for _, e := range events {
			m.log(e)
		}
		m.checkOutcome()
		return nil
	}
}

// checkOutcome polls the state for a decided match.
func (m *Match) checkOutcome() {
	o := m.State.Outcome()
	if !o.Over {
		return
	}
	m.Outcome = o
	if o.Winner < 0 {
		m.log(log.NewTieEvent(m.State.Turn, m.State.Phase.String(), o.Result))
		return
	}
	m.log(log.NewWinEvent(m.State.Turn, m.State.Phase.String(), o.Winner, o.Result))
}

// log emits a match event through the logger and notifies both players.
func (m *Match) log(event log.GameEvent) {
	m.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		_ = m.Controllers[i].Notify(m.ctx, event)
	}
}
