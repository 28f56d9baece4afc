package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/peterkuimelis/frontline/internal/view"
)

func newTestHandlers(t *testing.T, maxTurns int) (*Handlers, *Store) {
	t.Helper()
	store := NewStore(Options{Seed: 42, MaxTurns: maxTurns}, nil)
	t.Cleanup(store.CloseAll)
	return NewHandlers(store), store
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func decode(t *testing.T, res *mcp.CallToolResult) *ToolResponse {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	return &resp
}

func startMatch(t *testing.T, h *Handlers) *ToolResponse {
	t.Helper()
	res, err := h.StartMatch(context.Background(), call(map[string]any{
		"factions":          "Dragons, Knights",
		"opponent_factions": "necromancy,mages",
	}))
	require.NoError(t, err)
	return decode(t, res)
}

func TestListFactions(t *testing.T) {
	h, _ := newTestHandlers(t, 0)
	res, err := h.ListFactions(context.Background(), call(nil))
	require.NoError(t, err)

	var factions []view.FactionView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &factions))
	require.Len(t, factions, 4)
	assert.Equal(t, "Dragons", factions[0].Name)
	for _, f := range factions {
		assert.GreaterOrEqual(t, len(f.Heroes), 5, f.Name)
	}
}

func TestStartMatchReturnsFirstDecision(t *testing.T) {
	h, store := newTestHandlers(t, 0)
	resp := startMatch(t, h)

	assert.NotEmpty(t, resp.MatchID)
	assert.Equal(t, 1, store.Len())
	require.NotNil(t, resp.State)
	assert.Equal(t, 1, resp.State.Turn)
	assert.Equal(t, "Draw", resp.State.Phase)
	assert.True(t, resp.State.IsYourTurn)
	assert.Equal(t, []string{"Dragons", "Knights"}, resp.State.You.Factions)
	assert.Equal(t, "AI Overlord", resp.State.Opponent.Name)
	assert.Empty(t, resp.State.Opponent.Hand, "opponent hand is hidden")
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, "Draw", resp.Actions[0].Type)
	assert.False(t, resp.GameOver)
}

func TestStartMatchRejectsBadFactions(t *testing.T) {
	h, store := newTestHandlers(t, 0)
	for _, factions := range []string{"", "Dragons", "Dragons,Dragons", "Dragons,Elves"} {
		res, err := h.StartMatch(context.Background(), call(map[string]any{"factions": factions}))
		require.NoError(t, err)
		assert.True(t, res.IsError, factions)
	}
	assert.Equal(t, 0, store.Len())
}

func TestTakeActionPlaysToCompletion(t *testing.T) {
	h, _ := newTestHandlers(t, 6)
	resp := startMatch(t, h)
	id := resp.MatchID

	sawAIMove := false
	for i := 0; i < 500 && !resp.GameOver; i++ {
		require.NotEmpty(t, resp.Actions)
		res, err := h.TakeAction(context.Background(), call(map[string]any{
			"match_id": id,
			"index":    float64(0),
		}))
		require.NoError(t, err)
		resp = decode(t, res)
		for _, ev := range resp.Events {
			if ev.Player == 1 && ev.Type == "Deploy" {
				sawAIMove = true
			}
		}
	}

	require.True(t, resp.GameOver, "match should end within the turn limit")
	assert.NotEmpty(t, resp.Result)
	assert.True(t, sawAIMove, "AI deployments are reported to the agent")

	res, err := h.TakeAction(context.Background(), call(map[string]any{"match_id": id, "index": float64(0)}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "no actions after game over")
}

func TestTakeActionInvalidIndex(t *testing.T) {
	h, _ := newTestHandlers(t, 0)
	resp := startMatch(t, h)

	res, err := h.TakeAction(context.Background(), call(map[string]any{"match_id": resp.MatchID, "index": float64(7)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	// The pending decision survives a bad index.
	res, err = h.TakeAction(context.Background(), call(map[string]any{"match_id": resp.MatchID, "index": float64(0)}))
	require.NoError(t, err)
	next := decode(t, res)
	assert.Equal(t, "Placement", next.State.Phase)
}

func TestUnknownMatch(t *testing.T) {
	h, _ := newTestHandlers(t, 0)
	for _, handler := range []func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		h.TakeAction, h.GetMatchState, h.EndMatch,
	} {
		res, err := handler(context.Background(), call(map[string]any{"match_id": "nope", "index": float64(0)}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	}
}

func TestGetMatchStateIsReadOnly(t *testing.T) {
	h, _ := newTestHandlers(t, 0)
	resp := startMatch(t, h)

	res, err := h.GetMatchState(context.Background(), call(map[string]any{"match_id": resp.MatchID}))
	require.NoError(t, err)
	snap := decode(t, res)
	assert.Equal(t, resp.State.Phase, snap.State.Phase)
	assert.Equal(t, resp.Actions, snap.Actions)
	assert.False(t, snap.GameOver)
}

func TestToolJSONShape(t *testing.T) {
	h, _ := newTestHandlers(t, 0)
	res, err := h.StartMatch(context.Background(), call(map[string]any{
		"factions": "Mages,Necromancy",
		"seed":     float64(3),
	}))
	require.NoError(t, err)
	text := resultText(t, res)

	assert.True(t, gjson.Valid(text))
	assert.Equal(t, "Draw", gjson.Get(text, "state.phase").String())
	assert.Equal(t, int64(1), gjson.Get(text, "state.turn").Int())
	assert.Equal(t, int64(4), gjson.Get(text, "state.you.hand.#").Int())
	assert.False(t, gjson.Get(text, "state.opponent.hand").Exists(), "opponent hand is hidden")
	assert.Equal(t, int64(4), gjson.Get(text, "state.opponent.hand_count").Int())
	assert.Equal(t, int64(3), gjson.Get(text, "state.you.board.#").Int())
	assert.Equal(t, "Game started. Good luck heroes.", gjson.Get(text, "state.logs.0").String())
	assert.Equal(t, int64(-1), gjson.Get(text, "winner").Int())

	res, err = h.ListFactions(context.Background(), call(nil))
	require.NoError(t, err)
	names := gjson.Get(resultText(t, res), "#.name").Array()
	require.Len(t, names, 4)
	assert.Equal(t, "Knights", names[1].String())
}

func TestEndMatch(t *testing.T) {
	h, store := newTestHandlers(t, 0)
	resp := startMatch(t, h)

	res, err := h.EndMatch(context.Background(), call(map[string]any{"match_id": resp.MatchID}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(resp.MatchID)
	assert.ErrorIs(t, err, ErrNoSession)
}
