package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/opponent"
	"github.com/peterkuimelis/frontline/internal/view"
)

func newMatch(t *testing.T) *game.MatchState {
	t.Helper()
	s, err := game.BuildMatch(game.NewRand(9), game.DefaultCatalog(),
		[2]game.Faction{game.FactionDragons, game.FactionKnights},
		[2]game.Faction{game.FactionNecromancy, game.FactionMages}, true)
	require.NoError(t, err)
	return s
}

func TestChooseActionReadsNumber(t *testing.T) {
	s, err := game.Draw(newMatch(t))
	require.NoError(t, err)
	actions := game.LegalActions(s)

	var out bytes.Buffer
	c := NewController(0, strings.NewReader("abc\n0\n2\n"), &out)

	a, err := c.ChooseAction(context.Background(), s, actions)
	require.NoError(t, err)
	assert.Equal(t, actions[1], a)

	text := out.String()
	assert.Contains(t, text, "PLAYER 1 (Dragons+Knights)")
	assert.Contains(t, text, "Turn 1 | PLACEMENT | Your turn")
	assert.Contains(t, text, "Enter a number between 1 and")
	assert.Contains(t, text, "1) Deploy")
}

func TestChooseActionQuit(t *testing.T) {
	s := newMatch(t)
	c := NewController(0, strings.NewReader("q\n"), &bytes.Buffer{})
	_, err := c.ChooseAction(context.Background(), s, game.LegalActions(s))
	assert.ErrorIs(t, err, ErrQuit)

	c = NewController(0, strings.NewReader(""), &bytes.Buffer{})
	_, err = c.ChooseAction(context.Background(), s, game.LegalActions(s))
	assert.ErrorIs(t, err, ErrQuit, "EOF quits")
}

func TestNotifyFiltersHiddenEvents(t *testing.T) {
	var out bytes.Buffer
	c := NewController(0, strings.NewReader(""), &out)

	require.NoError(t, c.Notify(context.Background(), log.NewPhaseChangeEvent(1, 0, "Attack")))
	assert.Empty(t, out.String())

	require.NoError(t, c.Notify(context.Background(), log.NewFallEvent(2, 1, "Stormcaller")))
	assert.Equal(t, "T2  Attack    | Stormcaller falls!\n", out.String())

	c.Verbose = true
	out.Reset()
	require.NoError(t, c.Notify(context.Background(), log.NewPhaseChangeEvent(1, 0, "Attack")))
	assert.Contains(t, out.String(), "Phase → Attack")
}

func TestMuteDropsNotifications(t *testing.T) {
	var out bytes.Buffer
	c := NewController(1, strings.NewReader(""), &out)
	c.Mute = true
	c.Verbose = true

	require.NoError(t, c.Notify(context.Background(), log.NewFallEvent(2, 1, "Stormcaller")))
	assert.Empty(t, out.String())
}

func TestRenderStateShowsCriticalAndHiddenHand(t *testing.T) {
	s := newMatch(t)
	s.Players[1].DeathCounter = game.CriticalDeaths

	var out bytes.Buffer
	RenderState(&out, view.BuildStateView(s, 0))
	text := out.String()
	assert.Contains(t, text, "Deaths: 7/10 CRITICAL")
	assert.Contains(t, text, "Hand: 4")
	assert.Equal(t, 1, strings.Count(text, "Hand: ["), "only your own hand is listed")
}

// TestHumanVersusScriptedOpponent plays the first turn from the terminal
// against the scripted opponent and then quits.
func TestHumanVersusScriptedOpponent(t *testing.T) {
	// Draw (skipped), deploy the first option, then EOF.
	input := "1\n1\n"
	s := newMatch(t)
	var out bytes.Buffer
	human := NewController(0, strings.NewReader(input), &out)

	m := game.NewMatchFromState(s, game.MatchConfig{MaxTurns: 2}, human, opponent.NewController(0))
	_, err := m.Run(context.Background())
	assert.ErrorIs(t, err, ErrQuit)
	assert.Contains(t, out.String(), "Player 1 skips first draw.")
	assert.Contains(t, out.String(), "Player 1 deploys")
}

func TestRenderCatalog(t *testing.T) {
	var out bytes.Buffer
	RenderCatalog(&out, view.BuildCatalogView(game.DefaultCatalog()))
	assert.Contains(t, out.String(), "== Necromancy ==")
	assert.Contains(t, out.String(), "Lich Sovereign Morvane")
}
