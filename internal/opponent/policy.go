// Package opponent implements the scripted computer player.
package opponent

import (
	"github.com/peterkuimelis/frontline/internal/game"
)

// ChooseAction picks the scripted opponent's next move for the active
// player. It is greedy and first-available:
//
//	Draw       draw
//	Placement  deploy hand card 0 into the lowest empty slot, else advance
//	Attack     lowest ready attacker against lowest occupied enemy slot, else advance
//	Battle     advance
//	Recovery   recover
//
// The result depends only on s.
func ChooseAction(s *game.MatchState) game.Action {
	p := s.Active()
	opp := s.Defending()

	switch s.Phase {
	case game.PhaseDraw:
		return game.DrawAction()

	case game.PhasePlacement:
		if slot := p.FreeSlot(); slot >= 0 && p.HandCount() > 0 {
			return game.PlaceAction(0, slot)
		}
		return game.AdvanceAction()

	case game.PhaseAttack:
		attackers := p.ReadyAttackers()
		targets := opp.OccupiedSlots()
		if len(attackers) > 0 && len(targets) > 0 {
			return game.DuelAction(attackers[0], targets[0])
		}
		return game.AdvanceAction()

	case game.PhaseRecovery:
		return game.RecoverAction()
	}

	return game.AdvanceAction()
}

// PlayTurn applies the policy until the turn passes to the other player or
// an error occurs. It returns every intermediate state, the last one being
// the first state of the opponent's turn.
func PlayTurn(s *game.MatchState) ([]*game.MatchState, error) {
	start := s.ActivePlayer
	var states []*game.MatchState
	for s.ActivePlayer == start {
		next, _, err := game.Apply(s, ChooseAction(s))
		if err != nil {
			return states, err
		}
		states = append(states, next)
		s = next
	}
	return states, nil
}
