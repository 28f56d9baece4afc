package game

import (
	"fmt"

	"github.com/peterkuimelis/frontline/internal/log"
)

// Apply runs a single action against s and returns the resulting state and
// the events it produced. A refused action returns s itself, no events and
// a *RuleError.
func Apply(s *MatchState, a Action) (*MatchState, []log.GameEvent, error) {
	switch a.Type {
	case ActionDraw:
		return draw(s)
	case ActionPlace:
		return place(s, a.HandIndex, a.Slot)
	case ActionAdvancePhase:
		return advancePhase(s)
	case ActionDuel:
		return resolveDuel(s, a.Attacker, a.Defender)
	case ActionRecover:
		return recoverHeroes(s)
	}
	return s, nil, illegalMove("apply", "unknown action type %d", a.Type)
}

// LegalActions returns every action the active player may take right now.
func LegalActions(s *MatchState) []Action {
	p := s.Active()
	opp := s.Defending()
	var actions []Action

	switch s.Phase {
	case PhaseDraw:
		desc := "Draw a hero"
		switch {
		case s.Turn == 1 && s.ActivePlayer == 0:
			desc = "Draw (skipped on the first turn)"
		case len(p.Deck) == 0:
			desc = "Draw (deck is empty)"
		}
		actions = append(actions, Action{Type: ActionDraw, Desc: desc})

	case PhasePlacement:
		for _, slot := range p.FreeSlots() {
			for i, c := range p.Hand {
				a := PlaceAction(i, slot)
				a.Desc = fmt.Sprintf("Deploy %s to slot %d", c.Name, slot+1)
				actions = append(actions, a)
			}
		}
		actions = append(actions, Action{Type: ActionAdvancePhase, Desc: "Advance to Attack"})

	case PhaseAttack:
		for _, as := range p.ReadyAttackers() {
			for _, ds := range opp.OccupiedSlots() {
				a := DuelAction(as, ds)
				a.Desc = fmt.Sprintf("Duel: %s → %s", p.Board[as].Name, opp.Board[ds].Name)
				actions = append(actions, a)
			}
		}
		actions = append(actions, Action{Type: ActionAdvancePhase, Desc: "Advance to Battle"})

	case PhaseBattle:
		actions = append(actions, Action{Type: ActionAdvancePhase, Desc: "Advance to Recovery"})

	case PhaseRecovery:
		actions = append(actions, Action{Type: ActionRecover, Desc: "Recover survivors and end turn"})
	}

	return actions
}

// IsLegal reports whether a matches one of LegalActions(s), ignoring Desc.
func IsLegal(s *MatchState, a Action) bool {
	for _, la := range LegalActions(s) {
		if sameAction(la, a) {
			return true
		}
	}
	return false
}

func sameAction(a, b Action) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ActionPlace:
		return a.HandIndex == b.HandIndex && a.Slot == b.Slot
	case ActionDuel:
		return a.Attacker == b.Attacker && a.Defender == b.Defender
	}
	return true
}
