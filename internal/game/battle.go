package game

import (
	"fmt"

	"github.com/peterkuimelis/frontline/internal/log"
)

// ResolveDuel has the active player's hero at attackerSlot fight the
// opponent's hero at defenderSlot. Damage is simultaneous: the defender
// always strikes back with its full ATK, even when the attack kills it.
func ResolveDuel(s *MatchState, attackerSlot, defenderSlot int) (*MatchState, error) {
	next, _, err := resolveDuel(s, attackerSlot, defenderSlot)
	return next, err
}

func resolveDuel(s *MatchState, attackerSlot, defenderSlot int) (*MatchState, []log.GameEvent, error) {
	t, err := begin(s, "duel")
	if err != nil {
		return s, nil, err
	}
	if s.Phase != PhaseAttack {
		return s, nil, phaseViolation("duel", PhaseAttack, s.Phase)
	}
	if err := checkDuel(s, attackerSlot, defenderSlot); err != nil {
		return s, nil, err
	}

	ns := t.next
	tp := ns.ActivePlayer
	opp := ns.Opponent(tp)
	atkOwner := ns.Players[tp]
	defOwner := ns.Players[opp]
	attacker := atkOwner.Board[attackerSlot]
	defender := defOwner.Board[defenderSlot]

	t.emit(log.NewDuelEvent(ns.Turn, tp, attacker.Name, defender.Name))

	// Both results come from the pre-duel values.
	defenderHP := defender.CurrentHP - attacker.ATK
	attackerHP := attacker.CurrentHP - defender.ATK

	t.emit(log.NewDamageCalcEvent(ns.Turn, tp, fmt.Sprintf(
		"%s deals %d (HP %d → %d), %s strikes back for %d (HP %d → %d)",
		attacker.Name, attacker.ATK, defender.CurrentHP, defenderHP,
		defender.Name, defender.ATK, attacker.CurrentHP, attackerHP,
	)))

	attacker.HasAttacked = true
	defender.CurrentHP = defenderHP
	attacker.CurrentHP = attackerHP

	if defenderHP <= 0 {
		defOwner.Bury(defenderSlot)
		t.emit(log.NewFallEvent(ns.Turn, opp, defender.Name))
	}
	if attackerHP <= 0 {
		atkOwner.Bury(attackerSlot)
		t.emit(log.NewDuelDeathEvent(ns.Turn, tp, attacker.Name))
	}

	return t.commit()
}

// checkDuel validates the attacker and defender slots against s.
func checkDuel(s *MatchState, attackerSlot, defenderSlot int) error {
	if attackerSlot < 0 || attackerSlot >= BoardSlots {
		return illegalMove("duel", "attacker slot %d out of range", attackerSlot)
	}
	if defenderSlot < 0 || defenderSlot >= BoardSlots {
		return illegalMove("duel", "defender slot %d out of range", defenderSlot)
	}
	attacker := s.Active().Board[attackerSlot]
	if attacker == nil {
		return illegalMove("duel", "no hero in attacker slot %d", attackerSlot)
	}
	if attacker.HasAttacked {
		return illegalMove("duel", "%s has already attacked this turn", attacker.Name)
	}
	if s.Defending().Board[defenderSlot] == nil {
		return illegalMove("duel", "no enemy hero in slot %d", defenderSlot)
	}
	return nil
}
