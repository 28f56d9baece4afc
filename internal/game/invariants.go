package game

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies the structural rules every reachable state obeys:
// each card lives in exactly one zone, every player still owns exactly
// DeckSize cards, death counters match death piles and no hero is above its
// maximum HP. It returns the first problem found, or nil.
func CheckInvariants(s *MatchState) error {
	if s.ActivePlayer != 0 && s.ActivePlayer != 1 {
		return fmt.Errorf("active player %d is not 0 or 1", s.ActivePlayer)
	}
	if s.Turn < 1 {
		return fmt.Errorf("turn %d is below 1", s.Turn)
	}
	if s.Phase < PhaseDraw || s.Phase > PhaseRecovery {
		return fmt.Errorf("unknown phase %d", s.Phase)
	}
	if len(s.Logs) > MaxLogEntries {
		return fmt.Errorf("log holds %d entries, limit is %d", len(s.Logs), MaxLogEntries)
	}

	seen := make(map[string]string)
	var errs []error
	for i, p := range s.Players {
		if p == nil {
			return fmt.Errorf("player %d is missing", i)
		}
		if p.ID != i {
			errs = append(errs, fmt.Errorf("player at index %d has id %d", i, p.ID))
		}
		if n := p.CardCount(); n != DeckSize {
			errs = append(errs, fmt.Errorf("%s owns %d cards, want %d", p.Name, n, DeckSize))
		}
		if p.DeathCounter != len(p.DeathPile) {
			errs = append(errs, fmt.Errorf("%s death counter %d does not match death pile size %d",
				p.Name, p.DeathCounter, len(p.DeathPile)))
		}

		zones := []struct {
			name  string
			cards []*HeroCard
		}{
			{"deck", p.Deck},
			{"hand", p.Hand},
			{"board", p.Board[:]},
			{"death pile", p.DeathPile},
		}
		for _, z := range zones {
			for _, c := range z.cards {
				if c == nil {
					if z.name != "board" {
						errs = append(errs, fmt.Errorf("%s %s holds a nil card", p.Name, z.name))
					}
					continue
				}
				where := fmt.Sprintf("%s %s", p.Name, z.name)
				if prev, dup := seen[c.ID]; dup {
					errs = append(errs, fmt.Errorf("card %s found in both %s and %s", c.ID, prev, where))
				}
				seen[c.ID] = where
				if c.CurrentHP > c.MaxHP {
					errs = append(errs, fmt.Errorf("%s has HP %d above max %d", c.ID, c.CurrentHP, c.MaxHP))
				}
				if z.name == "board" && c.CurrentHP <= 0 {
					errs = append(errs, fmt.Errorf("%s is on the board with HP %d", c.ID, c.CurrentHP))
				}
			}
		}
	}
	return errors.Join(errs...)
}
