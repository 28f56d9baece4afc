// Package console implements the terminal front end: a board renderer and
// a human PlayerController that reads numbered choices from a reader.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/frontline/internal/view"
)

// RenderState draws the board from sv's perspective.
func RenderState(w io.Writer, sv *view.StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  %s (%s)  Hand: %d  Deck: %d  Deaths: %s\n",
		strings.ToUpper(opp.Name), strings.Join(opp.Factions, "+"),
		opp.HandCount, opp.DeckCount, formatDeaths(opp))
	fmt.Fprintf(w, "║  Board:  %s\n", formatBoard(opp.Board))

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Board:  %s\n", formatBoard(you.Board))
	fmt.Fprintf(w, "║  %s (%s)  Hand: %d  Deck: %d  Deaths: %s\n",
		strings.ToUpper(you.Name), strings.Join(you.Factions, "+"),
		you.HandCount, you.DeckCount, formatDeaths(you))
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, strings.ToUpper(sv.Phase))
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, c := range you.Hand {
			fmt.Fprintf(w, "[%d] %s %d/%d  ", i+1, c.Name, c.ATK, c.MaxHP)
		}
		fmt.Fprintln(w)
	}
}

func formatDeaths(pv view.PlayerView) string {
	s := fmt.Sprintf("%d/10", pv.DeathCounter)
	if pv.Critical {
		s += " CRITICAL"
	}
	return s
}

func formatBoard(board [3]view.SlotView) string {
	parts := make([]string, len(board))
	for i, sv := range board {
		parts[i] = formatSlot(sv)
	}
	return strings.Join(parts, " ")
}

func formatSlot(sv view.SlotView) string {
	if sv.Empty || sv.Hero == nil {
		return "[ ]"
	}
	h := sv.Hero
	mark := ""
	if h.HasAttacked {
		mark = "*"
	}
	return fmt.Sprintf("[%s%s ATK %d HP %d/%d]", h.Name, mark, h.ATK, h.HP, h.MaxHP)
}

// RenderActions lists the numbered choices.
func RenderActions(w io.Writer, actions []view.ActionView) {
	fmt.Fprintln(w, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(w, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

// RenderEvent prints one event line, formatted like the TextLogger.
func RenderEvent(w io.Writer, ev view.EventView) {
	phase := ev.Phase
	for len(phase) < 10 {
		phase += " "
	}
	fmt.Fprintf(w, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

// RenderGameOver prints the final banner.
func RenderGameOver(w io.Writer, result string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, "          GAME OVER")
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, result)
	fmt.Fprintln(w, "═══════════════════════════════════")
}

// RenderCatalog prints every faction's roster.
func RenderCatalog(w io.Writer, factions []view.FactionView) {
	for _, f := range factions {
		fmt.Fprintf(w, "== %s ==\n", f.Name)
		for _, h := range f.Heroes {
			fmt.Fprintf(w, "  %-24s ATK %d  HP %d  %s\n", h.Name, h.ATK, h.HP, h.Effect)
			if h.Quote != "" {
				fmt.Fprintf(w, "  %-24s \"%s\"\n", "", h.Quote)
			}
		}
	}
}
