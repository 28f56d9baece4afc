package game

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/peterkuimelis/frontline/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Used in tests to deterministically drive the match.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []scriptedAction
	pos     int
}

type scriptedAction struct {
	Action
	raw bool // submit as soon as it is reached, in any phase
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddPlace(handIndex, slot int) *ScriptedController {
	sc.actions = append(sc.actions, scriptedAction{Action: PlaceAction(handIndex, slot)})
	return sc
}

func (sc *ScriptedController) AddDuel(attacker, defender int) *ScriptedController {
	sc.actions = append(sc.actions, scriptedAction{Action: DuelAction(attacker, defender)})
	return sc
}

// AddRaw queues an action even if it is not legal, to exercise rejections.
func (sc *ScriptedController) AddRaw(a Action) *ScriptedController {
	sc.actions = append(sc.actions, scriptedAction{Action: a, raw: true})
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *MatchState, actions []Action) (Action, error) {
	// Peek at next scripted action. Only consume it once it is legal, so
	// scripts can span several turns without scripting every advance.
	if sc.pos < len(sc.actions) {
		scripted := sc.actions[sc.pos]
		if scripted.raw || IsLegal(state, scripted.Action) {
			sc.pos++
			return scripted.Action, nil
		}
	}

	// Default: Draw > Recover > Advance
	for _, want := range []ActionType{ActionDraw, ActionRecover, ActionAdvancePhase} {
		for _, a := range actions {
			if a.Type == want {
				return a, nil
			}
		}
	}
	return Action{}, fmt.Errorf("[%s] no default action in %s phase", sc.name, state.Phase)
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Test catalog helpers ---

// noShuffle keeps the catalog order, so decks are deterministic.
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

// reverseShuffle reverses the sequence.
type reverseShuffle struct{}

func (reverseShuffle) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func testTemplate(f Faction, n, atk, hp int) *HeroTemplate {
	return &HeroTemplate{
		ID:      fmt.Sprintf("%s-%d", f, n),
		Name:    fmt.Sprintf("%s Hero %d", f, n),
		Faction: f,
		ATK:     atk,
		MaxHP:   hp,
		Effect:  "none",
	}
}

// testCatalog gives every faction heroes with ATK n and HP n+2.
func testCatalog() *Catalog {
	rosters := make(map[Faction][]*HeroTemplate)
	for _, f := range AllFactions() {
		for n := 1; n <= CardsPerFaction+1; n++ {
			rosters[f] = append(rosters[f], testTemplate(f, n, n, n+2))
		}
	}
	return NewCatalog(rosters)
}

var (
	p1Factions = [2]Faction{FactionDragons, FactionKnights}
	p2Factions = [2]Faction{FactionNecromancy, FactionMages}
)

// newTestMatch builds an unshuffled vs-AI match.
func newTestMatch(t *testing.T) *MatchState {
	t.Helper()
	s, err := BuildMatch(noShuffle{}, testCatalog(), p1Factions, p2Factions, true)
	if err != nil {
		t.Fatalf("BuildMatch: %v", err)
	}
	return s
}

// duelState returns a match in the Attack phase with one hero on each
// board, in slot 0, carrying the given stats.
func duelState(t *testing.T, atkATK, atkHP, defATK, defHP int) *MatchState {
	t.Helper()
	s := newTestMatch(t)
	s.Phase = PhaseAttack
	for i, stats := range [2][2]int{{atkATK, atkHP}, {defATK, defHP}} {
		p := s.Players[i]
		c := p.TakeFromHand(0)
		c.ATK = stats[0]
		c.MaxHP = max(stats[1], c.MaxHP)
		c.CurrentHP = stats[1]
		p.Board[0] = c
	}
	mustHoldInvariants(t, s)
	return s
}

func mustApply(t *testing.T, s *MatchState, a Action) *MatchState {
	t.Helper()
	next, _, err := Apply(s, a)
	if err != nil {
		t.Fatalf("Apply(%s): %v", a, err)
	}
	mustHoldInvariants(t, next)
	return next
}

func mustHoldInvariants(t *testing.T, s *MatchState) {
	t.Helper()
	if err := CheckInvariants(s); err != nil {
		t.Fatalf("invariants broken: %v", err)
	}
}

// assertUnchanged fails if after is not the very same, untouched state.
func assertUnchanged(t *testing.T, before *MatchState, snapshot *MatchState, after *MatchState) {
	t.Helper()
	if after != before {
		t.Errorf("expected the original state pointer back")
	}
	if !reflect.DeepEqual(snapshot, after) {
		t.Errorf("state was modified by a refused operation")
	}
}

// runMatchToCompletion runs a match and returns the logger for inspection.
func runMatchToCompletion(t *testing.T, m *Match) *log.MemoryLogger {
	t.Helper()
	logger := log.NewMemoryLogger()
	m.Logger = logger

	winner, err := m.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", winner, m.Outcome.Result)
	return logger
}
