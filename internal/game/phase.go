package game

import (
	"github.com/peterkuimelis/frontline/internal/log"
)

// tx is a single transition in progress. It works on a clone of the input
// state and only hands the clone back if the result is consistent.
type tx struct {
	op     string
	prev   *MatchState
	next   *MatchState
	events []log.GameEvent
}

// begin opens a transition on s. A corrupt input is refused outright.
func begin(s *MatchState, op string) (*tx, error) {
	if s == nil {
		return nil, invariantBreach(op, "nil match state")
	}
	if err := CheckInvariants(s); err != nil {
		return nil, invariantBreach(op, "input state is corrupt: %v", err)
	}
	return &tx{op: op, prev: s, next: s.Clone()}, nil
}

// emit records an event. Visible events also go to the battle log.
func (t *tx) emit(e log.GameEvent) {
	if e.Phase == "" {
		e.Phase = t.next.Phase.String()
	}
	t.events = append(t.events, e)
	if e.Visible {
		t.next.pushLog(e.Details)
	}
}

// advance moves the clone to the next phase. Wrapping from Recovery hands
// the turn to the other player.
func (t *tx) advance() {
	s := t.next
	s.Phase = s.Phase.Next()
	if s.Phase == PhaseDraw {
		s.ActivePlayer = s.Opponent(s.ActivePlayer)
		s.Turn++
		t.emit(log.NewTurnEvent(s.Turn, s.ActivePlayer, s.Active().Name))
	}
	t.emit(log.NewPhaseChangeEvent(s.Turn, s.ActivePlayer, s.Phase.String()))
}

// commit validates the clone and returns it. On failure the original state
// is returned with no events.
func (t *tx) commit() (*MatchState, []log.GameEvent, error) {
	if err := CheckInvariants(t.next); err != nil {
		return t.prev, nil, invariantBreach(t.op, "%v", err)
	}
	return t.next, t.events, nil
}

// --- Draw ---

// Draw performs the Draw phase for the active player and advances to
// Placement. The first player skips the draw on turn 1; an empty deck is
// logged and is not an error.
func Draw(s *MatchState) (*MatchState, error) {
	next, _, err := draw(s)
	return next, err
}

func draw(s *MatchState) (*MatchState, []log.GameEvent, error) {
	t, err := begin(s, "draw")
	if err != nil {
		return s, nil, err
	}
	if s.Phase != PhaseDraw {
		return s, nil, phaseViolation("draw", PhaseDraw, s.Phase)
	}

	ns := t.next
	p := ns.Active()
	switch {
	case ns.Turn == 1 && ns.ActivePlayer == 0:
		t.emit(log.NewDrawSkippedEvent(ns.Turn, p.ID, p.Name))
	case len(p.Deck) == 0:
		t.emit(log.NewDeckEmptyEvent(ns.Turn, p.ID, p.Name))
	default:
		card := p.DrawCard()
		t.emit(log.NewDrawEvent(ns.Turn, p.ID, p.Name, card.Name))
	}

	t.advance()
	return t.commit()
}

// --- Placement ---

// Place deploys the hand card at handIndex into an empty board slot. The
// phase does not change.
func Place(s *MatchState, handIndex, slot int) (*MatchState, error) {
	next, _, err := place(s, handIndex, slot)
	return next, err
}

func place(s *MatchState, handIndex, slot int) (*MatchState, []log.GameEvent, error) {
	t, err := begin(s, "place")
	if err != nil {
		return s, nil, err
	}
	if s.Phase != PhasePlacement {
		return s, nil, phaseViolation("place", PhasePlacement, s.Phase)
	}

	p := s.Active()
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return s, nil, illegalMove("place", "hand index %d out of range (hand has %d cards)", handIndex, len(p.Hand))
	}
	if slot < 0 || slot >= BoardSlots {
		return s, nil, illegalMove("place", "slot %d out of range", slot)
	}
	if p.Board[slot] != nil {
		return s, nil, illegalMove("place", "slot %d is occupied by %s", slot, p.Board[slot].Name)
	}

	np := t.next.Active()
	card := np.TakeFromHand(handIndex)
	np.Board[slot] = card
	t.emit(log.NewDeployEvent(t.next.Turn, np.ID, np.Name, card.Name))

	return t.commit()
}

// --- Advance ---

// AdvancePhase moves to the next phase of the cycle. Leaving Recovery
// passes the turn to the other player and increments the turn counter.
// Nothing else changes.
func AdvancePhase(s *MatchState) (*MatchState, error) {
	next, _, err := advancePhase(s)
	return next, err
}

func advancePhase(s *MatchState) (*MatchState, []log.GameEvent, error) {
	t, err := begin(s, "advance")
	if err != nil {
		return s, nil, err
	}
	t.advance()
	return t.commit()
}

// --- Recovery ---

// Recover heals every hero on the active player's board to full and
// readies them, then advances (which ends the turn).
func Recover(s *MatchState) (*MatchState, error) {
	next, _, err := recoverHeroes(s)
	return next, err
}

func recoverHeroes(s *MatchState) (*MatchState, []log.GameEvent, error) {
	t, err := begin(s, "recover")
	if err != nil {
		return s, nil, err
	}
	if s.Phase != PhaseRecovery {
		return s, nil, phaseViolation("recover", PhaseRecovery, s.Phase)
	}

	p := t.next.Active()
	for _, c := range p.Board {
		if c == nil {
			continue
		}
		c.CurrentHP = c.MaxHP
		c.HasAttacked = false
	}
	t.emit(log.NewRecoverEvent(t.next.Turn, p.ID, p.Name))

	t.advance()
	return t.commit()
}
