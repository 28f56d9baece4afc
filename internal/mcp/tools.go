package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/view"
)

// Handlers exposes the tool handlers bound to one session store.
type Handlers struct {
	store *Store
}

// NewHandlers binds tool handlers to store.
func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

// RegisterTools adds all match tools to the MCP server.
func RegisterTools(s *server.MCPServer, store *Store) {
	h := NewHandlers(store)
	s.AddTool(listFactionsTool(), h.ListFactions)
	s.AddTool(startMatchTool(), h.StartMatch)
	s.AddTool(takeActionTool(), h.TakeAction)
	s.AddTool(getMatchStateTool(), h.GetMatchState)
	s.AddTool(endMatchTool(), h.EndMatch)
}

// --- Tool definitions ---

func listFactionsTool() mcp.Tool {
	return mcp.NewTool("list_factions",
		mcp.WithDescription("List the four factions and their hero rosters (name, ATK, HP, flavor effect)."),
	)
}

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a Frontline Heroes match against the scripted AI. You play Player 1 and move first. "+
			"Returns the match_id, the opening state and the numbered list of legal actions."),
		mcp.WithString("factions", mcp.Required(), mcp.Description("Two distinct factions for your deck, comma separated (e.g. 'Dragons,Mages')")),
		mcp.WithString("opponent_factions", mcp.Description("Two distinct factions for the AI, comma separated. Random when omitted.")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed for a reproducible match. 0 or omitted for random.")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list. Blocks until it is your turn to act again or the match ends."),
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match ID returned by start_match")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current match state, accumulated events, and pending actions without submitting anything. Read-only."),
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match ID returned by start_match")),
	)
}

func endMatchTool() mcp.Tool {
	return mcp.NewTool("end_match",
		mcp.WithDescription("Abandon a match and free its resources."),
		mcp.WithString("match_id", mcp.Required(), mcp.Description("Match ID returned by start_match")),
	)
}

// --- Tool handlers ---

// ListFactions handles list_factions.
func (h *Handlers) ListFactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(view.BuildCatalogView(h.store.Catalog()))), nil
}

// StartMatch handles start_match.
func (h *Handlers) StartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent, err := view.ParseFactionPair(splitList(request.GetString("factions", "")))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid factions: %v", err), nil
	}

	var ai [2]game.Faction
	if raw := request.GetString("opponent_factions", ""); strings.TrimSpace(raw) != "" {
		ai, err = view.ParseFactionPair(splitList(raw))
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid opponent_factions: %v", err), nil
		}
	} else {
		ai = game.RandomFactions(game.NewRand(0))
	}

	resp, err := h.store.Start(ctx, agent, ai, int64(request.GetInt("seed", 0)))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// TakeAction handles take_action.
func (h *Handlers) TakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.store.Get(request.GetString("match_id", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("%v. Use start_match first.", err), nil
	}

	resp, err := sess.TakeAction(ctx, request.GetInt("index", -1))
	switch {
	case errors.Is(err, ErrMatchOver):
		return mcp.NewToolResultError("The match is over. Use end_match or start a new one."), nil
	case err != nil:
		return mcp.NewToolResultErrorf("Invalid action: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// GetMatchState handles get_match_state.
func (h *Handlers) GetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := h.store.Get(request.GetString("match_id", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Snapshot())), nil
}

// EndMatch handles end_match.
func (h *Handlers) EndMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("match_id", "")
	if err := h.store.End(id); err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string]string{"match_id": id, "status": "ended"})), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
