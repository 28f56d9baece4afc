package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Faction int

const (
	FactionDragons Faction = iota
	FactionKnights
	FactionNecromancy
	FactionMages
)

func (f Faction) String() string {
	switch f {
	case FactionDragons:
		return "Dragons"
	case FactionKnights:
		return "Knights"
	case FactionNecromancy:
		return "Necromancy"
	case FactionMages:
		return "Mages"
	default:
		return "Unknown"
	}
}

// AllFactions returns every faction in display order.
func AllFactions() []Faction {
	return []Faction{FactionDragons, FactionKnights, FactionNecromancy, FactionMages}
}

// ParseFaction resolves a faction by name, ignoring case.
func ParseFaction(name string) (Faction, error) {
	for _, f := range AllFactions() {
		if strings.EqualFold(strings.TrimSpace(name), f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown faction %q", name)
}

type Phase int

const (
	PhaseDraw Phase = iota
	PhasePlacement
	PhaseAttack
	PhaseBattle
	PhaseRecovery
)

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "Draw"
	case PhasePlacement:
		return "Placement"
	case PhaseAttack:
		return "Attack"
	case PhaseBattle:
		return "Battle"
	case PhaseRecovery:
		return "Recovery"
	default:
		return "None"
	}
}

// Next returns the following phase in the turn cycle. Recovery wraps to Draw.
func (p Phase) Next() Phase {
	if p == PhaseRecovery {
		return PhaseDraw
	}
	return p + 1
}

// --- Card definition (static, from the catalog) ---

type HeroTemplate struct {
	ID      string
	Name    string
	Faction Faction
	ATK     int
	MaxHP   int
	Effect  string // flavour only, never interpreted
	Quote   string
}

func (t *HeroTemplate) String() string {
	return t.Name
}

// --- HeroCard (runtime card in deck/hand/board/death pile) ---

type HeroCard struct {
	ID          string // unique within a match
	Name        string
	Faction     Faction
	ATK         int
	MaxHP       int
	CurrentHP   int
	Effect      string
	Quote       string
	HasAttacked bool
}

// NewHeroCard clones a template into a fresh, independent card instance.
func NewHeroCard(t *HeroTemplate, id string) *HeroCard {
	return &HeroCard{
		ID:        id,
		Name:      t.Name,
		Faction:   t.Faction,
		ATK:       t.ATK,
		MaxHP:     t.MaxHP,
		CurrentHP: t.MaxHP,
		Effect:    t.Effect,
		Quote:     t.Quote,
	}
}

func (c *HeroCard) String() string {
	if c == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (ATK %d, HP %d/%d)", c.Name, c.ATK, c.CurrentHP, c.MaxHP)
}

// Clone returns a copy of the card. Cards hold no references, so a shallow
// copy is independent.
func (c *HeroCard) Clone() *HeroCard {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// --- Action types ---

type ActionType int

const (
	ActionDraw ActionType = iota
	ActionPlace
	ActionAdvancePhase
	ActionDuel
	ActionRecover
)

func (a ActionType) String() string {
	switch a {
	case ActionDraw:
		return "Draw"
	case ActionPlace:
		return "Place"
	case ActionAdvancePhase:
		return "Advance Phase"
	case ActionDuel:
		return "Duel"
	case ActionRecover:
		return "Recover"
	default:
		return "Unknown"
	}
}

// ParseActionType resolves an action type from its String form or a short
// alias ("draw", "place", "advance", "duel", "recover").
func ParseActionType(s string) (ActionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draw":
		return ActionDraw, nil
	case "place", "deploy":
		return ActionPlace, nil
	case "advance", "advance phase", "advance_phase", "next":
		return ActionAdvancePhase, nil
	case "duel", "attack":
		return ActionDuel, nil
	case "recover", "recovery":
		return ActionRecover, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Action is a single command against a MatchState. Only the fields relevant
// to Type are read.
type Action struct {
	Type      ActionType
	HandIndex int    // ActionPlace: index into the active player's hand
	Slot      int    // ActionPlace: target board slot
	Attacker  int    // ActionDuel: active player's board slot
	Defender  int    // ActionDuel: opponent's board slot
	Desc      string // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	switch a.Type {
	case ActionPlace:
		return fmt.Sprintf("Place hand card %d in slot %d", a.HandIndex+1, a.Slot+1)
	case ActionDuel:
		return fmt.Sprintf("Duel: slot %d → enemy slot %d", a.Attacker+1, a.Defender+1)
	}
	return a.Type.String()
}

// Convenience constructors.

func DrawAction() Action { return Action{Type: ActionDraw} }

func PlaceAction(handIndex, slot int) Action {
	return Action{Type: ActionPlace, HandIndex: handIndex, Slot: slot}
}

func AdvanceAction() Action { return Action{Type: ActionAdvancePhase} }

func DuelAction(attacker, defender int) Action {
	return Action{Type: ActionDuel, Attacker: attacker, Defender: defender}
}

func RecoverAction() Action { return Action{Type: ActionRecover} }
