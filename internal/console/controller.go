package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/view"
)

// ErrQuit is returned when the player abandons the match.
var ErrQuit = errors.New("player quit")

// Controller implements game.PlayerController for a human at a terminal.
type Controller struct {
	player int
	in     *bufio.Reader
	out    io.Writer

	// Events lists every event instead of only battle log lines.
	Verbose bool
	// Mute drops notifications. The second seat of a hot-seat match sets it
	// so each event is printed once.
	Mute bool
}

// NewController creates a controller for the given seat.
func NewController(player int, in io.Reader, out io.Writer) *Controller {
	return &Controller{player: player, in: bufio.NewReader(in), out: out}
}

// ChooseAction implements game.PlayerController.
func (c *Controller) ChooseAction(ctx context.Context, state *game.MatchState, actions []game.Action) (game.Action, error) {
	RenderState(c.out, view.BuildStateView(state, c.player))
	RenderActions(c.out, view.BuildActionViews(actions))

	idx, err := c.readChoice(ctx, len(actions))
	if err != nil {
		return game.Action{}, err
	}
	return actions[idx], nil
}

// Notify implements game.PlayerController.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	if c.Mute {
		return nil
	}
	if !c.Verbose && !event.Visible && event.Type != log.EventWin && event.Type != log.EventDraw_Tie && event.Type != log.EventRejected {
		return nil
	}
	RenderEvent(c.out, view.EventViewOf(event))
	return nil
}

func (c *Controller) readChoice(ctx context.Context, count int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrQuit
			}
			return 0, fmt.Errorf("read choice: %w", err)
		}
		if line == "q" || line == "quit" {
			return 0, ErrQuit
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d (q to quit)\n", count)
			continue
		}
		return n - 1, nil // convert to 0-indexed
	}
}
