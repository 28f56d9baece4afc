package opponent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
)

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := SimConfig{Games: 5, Seed: 100, RandomFactions: true, MaxTurns: 60}

	first, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first.Results, 5)
	assert.Equal(t, 5, first.Wins[0]+first.Wins[1]+first.Ties)
	for i, res := range first.Results {
		assert.Equal(t, int64(100+i), res.Seed)
		assert.NotEqual(t, res.P1Factions[0], res.P1Factions[1])
		assert.NotEmpty(t, res.Result)
		assert.LessOrEqual(t, res.Turns, 61)
	}
	assert.Greater(t, first.AverageTurns(), 1.0)
}

func TestSimulateFixedFactionsAndLogger(t *testing.T) {
	loggers := map[int]*log.MemoryLogger{}
	report, err := Simulate(context.Background(), SimConfig{
		Games:      2,
		Seed:       7,
		P1Factions: [2]game.Faction{game.FactionDragons, game.FactionKnights},
		P2Factions: [2]game.Faction{game.FactionNecromancy, game.FactionMages},
		MaxTurns:   30,
		NewLogger: func(i int) log.EventLogger {
			loggers[i] = log.NewMemoryLogger()
			return loggers[i]
		},
	})
	require.NoError(t, err)
	require.Len(t, loggers, 2)
	for i, res := range report.Results {
		assert.Equal(t, [2]game.Faction{game.FactionDragons, game.FactionKnights}, res.P1Factions)
		assert.NotEmpty(t, loggers[i].EventsOfType(log.EventMatchStart))
		assert.NotEmpty(t, loggers[i].EventsOfType(log.EventDeploy))
	}
}

func TestSimulateErrors(t *testing.T) {
	_, err := Simulate(context.Background(), SimConfig{Games: 0})
	assert.Error(t, err)

	_, err = Simulate(context.Background(), SimConfig{
		Games:      1,
		P1Factions: [2]game.Faction{game.FactionDragons, game.FactionDragons},
		P2Factions: [2]game.Faction{game.FactionNecromancy, game.FactionMages},
	})
	assert.ErrorIs(t, err, game.ErrInvalidSetup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Simulate(ctx, SimConfig{Games: 1, RandomFactions: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAverageTurnsEmpty(t *testing.T) {
	assert.Zero(t, (&SimReport{}).AverageTurns())
}
