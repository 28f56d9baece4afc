package game

import "fmt"

// CriticalDeaths is the death count at which a player is shown as close to
// defeat.
const CriticalDeaths = 7

// Outcome describes whether a match has been decided.
type Outcome struct {
	Over   bool
	Winner int // 0 or 1, -1 for a draw or while the match is running
	Loser  int // 0 or 1, -1 for a draw or while the match is running
	Result string
}

// Outcome reports whether either player has reached DeathLimit. The engine
// never stops on its own; callers check this after every transition.
func (s *MatchState) Outcome() Outcome {
	lost0 := s.Players[0].DeathCounter >= DeathLimit
	lost1 := s.Players[1].DeathCounter >= DeathLimit

	switch {
	case lost0 && lost1:
		return Outcome{Over: true, Winner: -1, Loser: -1,
			Result: fmt.Sprintf("Draw: both sides lost %d heroes", DeathLimit)}
	case lost0 || lost1:
		loser := 0
		if lost1 {
			loser = 1
		}
		winner := s.Opponent(loser)
		return Outcome{
			Over:   true,
			Winner: winner,
			Loser:  loser,
			Result: fmt.Sprintf("%s wins: %s lost %d heroes",
				s.Players[winner].Name, s.Players[loser].Name, s.Players[loser].DeathCounter),
		}
	}
	return Outcome{Winner: -1, Loser: -1}
}

// IsCritical reports whether the player is close to losing.
func (p *PlayerState) IsCritical() bool {
	return p.DeathCounter >= CriticalDeaths
}
