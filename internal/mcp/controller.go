package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/view"
)

// Controller implements game.PlayerController by sending decisions to the
// MCP session's pending channel and blocking on a response channel.
type Controller struct {
	player     int
	session    *Session
	responseCh chan int
}

// NewController creates a controller for the given player.
func NewController(player int, session *Session) *Controller {
	return &Controller{
		player:     player,
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseAction implements game.PlayerController.
func (c *Controller) ChooseAction(ctx context.Context, state *game.MatchState, actions []game.Action) (game.Action, error) {
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  c.player,
		State:   view.BuildStateView(state, c.player),
		Actions: view.BuildActionViews(actions),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	select {
	case idx := <-c.responseCh:
		if idx < 0 || idx >= len(actions) {
			return game.Action{}, fmt.Errorf("%w: %d, must be 0-%d", ErrBadIndex, idx, len(actions)-1)
		}
		return actions[idx], nil
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
}

// Notify implements game.PlayerController. Only battle log lines and
// results are kept for the agent.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	switch {
	case event.Visible, event.Type == log.EventWin, event.Type == log.EventDraw_Tie:
		c.session.appendEvent(view.EventViewOf(event))
	}
	return nil
}
