package opponent

import (
	"context"
	"time"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
)

// Controller implements game.PlayerController with the scripted policy.
// Delay paces each decision for spectators; it never changes the choice.
type Controller struct {
	Delay time.Duration
}

// NewController creates a controller that waits delay before every move.
func NewController(delay time.Duration) *Controller {
	return &Controller{Delay: delay}
}

// ChooseAction implements game.PlayerController.
func (c *Controller) ChooseAction(ctx context.Context, state *game.MatchState, actions []game.Action) (game.Action, error) {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return game.Action{}, ctx.Err()
		case <-timer.C:
		}
	}
	return ChooseAction(state), nil
}

// Notify implements game.PlayerController.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
