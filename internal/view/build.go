package view

import (
	"fmt"

	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
)

// BuildStateView creates a StateView from the perspective of the given
// player. The opponent's hand is reduced to a count.
func BuildStateView(state *game.MatchState, player int) *StateView {
	me := player
	opp := state.Opponent(me)

	sv := &StateView{
		You:          buildPlayerView(state.Players[me], true),
		Opponent:     buildPlayerView(state.Players[opp], false),
		Turn:         state.Turn,
		Phase:        state.Phase.String(),
		ActivePlayer: state.ActivePlayer,
		IsYourTurn:   state.ActivePlayer == me,
		Logs:         append([]string(nil), state.Logs...),
		Winner:       -1,
	}

	if o := state.Outcome(); o.Over {
		sv.GameOver = true
		sv.Winner = o.Winner
		sv.Result = o.Result
	}
	return sv
}

func buildPlayerView(p *game.PlayerState, own bool) PlayerView {
	pv := PlayerView{
		Name:           p.Name,
		IsAI:           p.IsAI,
		Factions:       []string{p.Factions[0].String(), p.Factions[1].String()},
		HandCount:      p.HandCount(),
		DeckCount:      p.DeckCount(),
		DeathCounter:   p.DeathCounter,
		DeathPileCount: len(p.DeathPile),
		Critical:       p.IsCritical(),
	}
	if own {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, CardViewOf(c))
		}
	}
	for i, c := range p.Board {
		pv.Board[i] = SlotView{Slot: i, Empty: c == nil}
		if c != nil {
			cv := CardViewOf(c)
			pv.Board[i].Hero = &cv
		}
	}
	return pv
}

// CardViewOf converts a hero card.
func CardViewOf(c *game.HeroCard) CardView {
	return CardView{
		ID:          c.ID,
		Name:        c.Name,
		Faction:     c.Faction.String(),
		ATK:         c.ATK,
		HP:          c.CurrentHP,
		MaxHP:       c.MaxHP,
		Effect:      c.Effect,
		Quote:       c.Quote,
		HasAttacked: c.HasAttacked,
	}
}

// BuildActionViews numbers a list of actions.
func BuildActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		av := ActionView{Index: i, Type: a.Type.String(), Desc: a.String()}
		switch a.Type {
		case game.ActionPlace:
			av.HandIndex, av.Slot = intPtr(a.HandIndex), intPtr(a.Slot)
		case game.ActionDuel:
			av.Attacker, av.Defender = intPtr(a.Attacker), intPtr(a.Defender)
		}
		views = append(views, av)
	}
	return views
}

func intPtr(v int) *int { return &v }

// EventViewOf converts a match event.
func EventViewOf(e log.GameEvent) EventView {
	return EventView{
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// BuildCatalogView lists every faction's roster in display order.
func BuildCatalogView(cat *game.Catalog) []FactionView {
	var out []FactionView
	for _, f := range cat.Factions() {
		fv := FactionView{Name: f.String()}
		for _, t := range cat.Roster(f) {
			fv.Heroes = append(fv.Heroes, TemplateView{
				ID:     t.ID,
				Name:   t.Name,
				ATK:    t.ATK,
				HP:     t.MaxHP,
				Effect: t.Effect,
				Quote:  t.Quote,
			})
		}
		out = append(out, fv)
	}
	return out
}

// ParseFactionPair resolves two distinct faction names.
func ParseFactionPair(names []string) ([2]game.Faction, error) {
	var pair [2]game.Faction
	if len(names) != 2 {
		return pair, fmt.Errorf("need exactly two factions, got %d", len(names))
	}
	for i, n := range names {
		f, err := game.ParseFaction(n)
		if err != nil {
			return pair, err
		}
		pair[i] = f
	}
	if pair[0] == pair[1] {
		return pair, fmt.Errorf("factions must differ, got %s twice", pair[0])
	}
	return pair, nil
}
