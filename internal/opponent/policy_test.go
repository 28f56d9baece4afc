package opponent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
)

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func newMatch(t *testing.T) *game.MatchState {
	t.Helper()
	s, err := game.BuildMatch(noShuffle{}, game.DefaultCatalog(),
		[2]game.Faction{game.FactionDragons, game.FactionKnights},
		[2]game.Faction{game.FactionNecromancy, game.FactionMages}, true)
	require.NoError(t, err)
	return s
}

func TestChooseActionByPhase(t *testing.T) {
	s := newMatch(t)
	assert.Equal(t, game.DrawAction(), ChooseAction(s))

	s.Phase = game.PhaseBattle
	assert.Equal(t, game.AdvanceAction(), ChooseAction(s))

	s.Phase = game.PhaseRecovery
	assert.Equal(t, game.RecoverAction(), ChooseAction(s))
}

func TestPlacementFillsLowestSlots(t *testing.T) {
	s := newMatch(t)
	s, err := game.Draw(s)
	require.NoError(t, err)

	first := s.Active().Hand[0]
	assert.Equal(t, game.PlaceAction(0, 0), ChooseAction(s))

	s, err = game.Place(s, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, s.Active().Board[0].ID)

	// Slot 1 taken out of order; the policy fills slot 2 next.
	s, err = game.Place(s, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, game.PlaceAction(0, 2), ChooseAction(s))

	s, err = game.Place(s, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, game.AdvanceAction(), ChooseAction(s), "full board advances")
}

func TestPlacementWithEmptyHandAdvances(t *testing.T) {
	s := newMatch(t)
	s.Phase = game.PhasePlacement
	p := s.Active()
	p.Deck = append(p.Deck, p.Hand...)
	p.Hand = nil

	assert.Equal(t, game.AdvanceAction(), ChooseAction(s))
}

func TestAttackPicksFirstPair(t *testing.T) {
	s := newMatch(t)
	s.Phase = game.PhaseAttack
	me, them := s.Players[0], s.Players[1]

	// No enemies yet.
	me.Board[1] = me.TakeFromHand(0)
	assert.Equal(t, game.AdvanceAction(), ChooseAction(s))

	them.Board[2] = them.TakeFromHand(0)
	them.Board[1] = them.TakeFromHand(0)
	assert.Equal(t, game.DuelAction(1, 1), ChooseAction(s))

	me.Board[0] = me.TakeFromHand(0)
	me.Board[0].HasAttacked = true
	assert.Equal(t, game.DuelAction(1, 1), ChooseAction(s), "attacked heroes are skipped")

	me.Board[1].HasAttacked = true
	assert.Equal(t, game.AdvanceAction(), ChooseAction(s), "no ready attacker")
}

// TestPolicyAlwaysLegal plays full AI-vs-AI matches with the policy and
// checks every chosen action is accepted.
func TestPolicyAlwaysLegal(t *testing.T) {
	for _, seed := range []int64{3, 17, 2024} {
		rng := game.NewRand(seed)
		s, err := game.BuildMatch(rng, game.DefaultCatalog(), game.RandomFactions(rng), game.RandomFactions(rng), true)
		require.NoError(t, err)

		for turn := 0; turn < 400 && !s.Outcome().Over; turn++ {
			states, err := PlayTurn(s)
			require.NoError(t, err, "seed %d turn %d", seed, s.Turn)
			require.NotEmpty(t, states)
			for _, st := range states {
				require.NoError(t, game.CheckInvariants(st))
			}
			s = states[len(states)-1]
			assert.True(t, game.IsLegal(s, ChooseAction(s)), "policy chose an illegal action")
		}
	}
}

func TestPlayTurnEndsOnOpponentDraw(t *testing.T) {
	s := newMatch(t)
	states, err := PlayTurn(s)
	require.NoError(t, err)

	last := states[len(states)-1]
	assert.Equal(t, 1, last.ActivePlayer)
	assert.Equal(t, game.PhaseDraw, last.Phase)
	assert.Equal(t, 2, last.Turn)
	assert.Equal(t, 3, last.Players[0].HeroCount(), "turn one deploys three heroes")
	assert.Equal(t, "Player 1 survivors recover.", last.Logs[0])
}

func TestControllerWithMatchRunner(t *testing.T) {
	logger := log.NewMemoryLogger()
	m, err := game.NewMatch(game.MatchConfig{
		P1Factions: [2]game.Faction{game.FactionDragons, game.FactionMages},
		P2Factions: [2]game.Faction{game.FactionKnights, game.FactionNecromancy},
		VsAI:       true,
		Seed:       11,
		Logger:     logger,
	}, NewController(0), NewController(0))
	require.NoError(t, err)

	_, err = m.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, m.Outcome.Over)
	assert.Empty(t, logger.EventsOfType(log.EventRejected))
}

func TestControllerDelayHonoursContext(t *testing.T) {
	c := NewController(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.ChooseAction(ctx, newMatch(t), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestControllerDelayDoesNotChangeChoice(t *testing.T) {
	s := newMatch(t)
	a, err := NewController(time.Millisecond).ChooseAction(context.Background(), s, game.LegalActions(s))
	require.NoError(t, err)
	assert.Equal(t, ChooseAction(s), a)
}
