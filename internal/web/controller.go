package web

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/view"
)

// Controller implements game.PlayerController over a browser websocket.
// In hot-seat matches both seats share one connection; only the first
// seat forwards notifications so the browser sees each event once.
type Controller struct {
	conn   *websocket.Conn
	player int // which player this controller is (0 or 1)
	notify bool
}

// NewController creates a controller for the given seat.
func NewController(conn *websocket.Conn, player int, notify bool) *Controller {
	return &Controller{conn: conn, player: player, notify: notify}
}

// ChooseAction implements game.PlayerController. Choices that are not a
// valid index get an error message and the browser is asked again.
func (c *Controller) ChooseAction(ctx context.Context, state *game.MatchState, actions []game.Action) (game.Action, error) {
	msg := view.ServerMessage{
		Type:    "choose_action",
		Actions: view.BuildActionViews(actions),
		State:   view.BuildStateView(state, c.player),
	}
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	for {
		var resp view.ClientMessage
		if err := wsjson.Read(ctx, c.conn, &resp); err != nil {
			return game.Action{}, fmt.Errorf("recv action: %w", err)
		}
		if resp.Type == "action" && resp.Index >= 0 && resp.Index < len(actions) {
			return actions[resp.Index], nil
		}
		errMsg := view.ServerMessage{
			Type:   "error",
			Result: fmt.Sprintf("expected an action index between 0 and %d", len(actions)-1),
		}
		if err := wsjson.Write(ctx, c.conn, errMsg); err != nil {
			return game.Action{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// Notify implements game.PlayerController.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	if !c.notify {
		return nil
	}
	ev := view.EventViewOf(event)
	return wsjson.Write(ctx, c.conn, view.ServerMessage{Type: "notify", Event: &ev})
}
