package opponent

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
)

// SimConfig describes a batch of scripted-vs-scripted matches.
type SimConfig struct {
	Catalog *game.Catalog
	Games   int
	// Seed is the first match seed; match i uses Seed+i. Zero picks a
	// random base seed.
	Seed int64
	// Factions for each side. When RandomFactions is set every match draws
	// fresh pairs from its own seed instead.
	P1Factions     [2]game.Faction
	P2Factions     [2]game.Faction
	RandomFactions bool
	MaxTurns       int
	// NewLogger returns the event logger for match i. Nil keeps events in
	// memory only.
	NewLogger func(i int) log.EventLogger
}

// SimResult is the outcome of one simulated match.
type SimResult struct {
	Seed       int64
	P1Factions [2]game.Faction
	P2Factions [2]game.Faction
	Winner     int // -1 for a draw or turn limit
	Turns      int
	Result     string
}

// SimReport aggregates a batch.
type SimReport struct {
	Wins    [2]int
	Ties    int
	Results []SimResult
}

// AverageTurns returns the mean match length.
func (r *SimReport) AverageTurns() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	total := 0
	for _, res := range r.Results {
		total += res.Turns
	}
	return float64(total) / float64(len(r.Results))
}

// Simulate plays cfg.Games matches with the scripted policy in both seats.
func Simulate(ctx context.Context, cfg SimConfig) (*SimReport, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	base := cfg.Seed
	if base == 0 {
		base = game.NewSeed()
	}

	report := &SimReport{}
	for i := 0; i < cfg.Games; i++ {
		seed := base + int64(i)
		rng := game.NewRand(seed)

		p1, p2 := cfg.P1Factions, cfg.P2Factions
		if cfg.RandomFactions {
			p1 = game.RandomFactions(rng)
			p2 = game.RandomFactions(rng)
		}

		var logger log.EventLogger
		if cfg.NewLogger != nil {
			logger = cfg.NewLogger(i)
		}

		m, err := game.NewMatch(game.MatchConfig{
			Catalog:    cfg.Catalog,
			P1Factions: p1,
			P2Factions: p2,
			VsAI:       true,
			Rand:       rng,
			Logger:     logger,
			MaxTurns:   cfg.MaxTurns,
		}, NewController(0), NewController(0))
		if err != nil {
			return report, fmt.Errorf("match %d: %w", i+1, err)
		}

		winner, err := m.Run(ctx)
		if err != nil {
			return report, fmt.Errorf("match %d: %w", i+1, err)
		}

		if winner < 0 {
			report.Ties++
		} else {
			report.Wins[winner]++
		}
		report.Results = append(report.Results, SimResult{
			Seed:       seed,
			P1Factions: p1,
			P2Factions: p2,
			Winner:     winner,
			Turns:      m.State.Turn,
			Result:     m.Outcome.Result,
		})
	}
	return report, nil
}
