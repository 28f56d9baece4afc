// Package view projects match state into JSON-friendly views for the
// terminal, web and MCP front ends, and defines the websocket protocol.
package view

// Message types for the JSON protocol over the websocket.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "notify", "choose_action", "state", "game_over", "error"

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action" and "state"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "game_over" and "error"
	Winner *int   `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified match event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index     int    `json:"index"`
	Type      string `json:"type"`
	Desc      string `json:"desc"`
	HandIndex *int   `json:"hand_index,omitempty"`
	Slot      *int   `json:"slot,omitempty"`
	Attacker  *int   `json:"attacker,omitempty"`
	Defender  *int   `json:"defender,omitempty"`
}

// CardView describes one hero.
type CardView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Faction     string `json:"faction"`
	ATK         int    `json:"atk"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
	Effect      string `json:"effect,omitempty"`
	Quote       string `json:"quote,omitempty"`
	HasAttacked bool   `json:"has_attacked,omitempty"`
}

// SlotView describes a single board slot.
type SlotView struct {
	Slot  int       `json:"slot"`
	Empty bool      `json:"empty,omitempty"`
	Hero  *CardView `json:"hero,omitempty"`
}

// PlayerView shows one side of the table.
type PlayerView struct {
	Name           string      `json:"name"`
	IsAI           bool        `json:"is_ai,omitempty"`
	Factions       []string    `json:"factions"`
	HandCount      int         `json:"hand_count"`
	Hand           []CardView  `json:"hand,omitempty"` // only for "you"
	Board          [3]SlotView `json:"board"`
	DeckCount      int         `json:"deck_count"`
	DeathCounter   int         `json:"death_counter"`
	DeathPileCount int         `json:"death_pile_count"`
	Critical       bool        `json:"critical,omitempty"`
}

// StateView is the match state from one player's perspective.
type StateView struct {
	You          PlayerView `json:"you"`
	Opponent     PlayerView `json:"opponent"`
	Turn         int        `json:"turn"`
	Phase        string     `json:"phase"`
	ActivePlayer int        `json:"active_player"`
	IsYourTurn   bool       `json:"is_your_turn"`
	Logs         []string   `json:"logs"`
	GameOver     bool       `json:"game_over,omitempty"`
	Winner       int        `json:"winner"`
	Result       string     `json:"result,omitempty"`
}

// TemplateView describes a catalog entry.
type TemplateView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ATK    int    `json:"atk"`
	HP     int    `json:"hp"`
	Effect string `json:"effect"`
	Quote  string `json:"quote,omitempty"`
}

// FactionView is one faction's roster.
type FactionView struct {
	Name   string         `json:"name"`
	Heroes []TemplateView `json:"heroes"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "start", "action"

	// For "action"
	Index int `json:"index,omitempty"`

	// For "start": two faction names each; empty P2 factions are random.
	Factions   []string `json:"factions,omitempty"`
	P2Factions []string `json:"p2_factions,omitempty"`
	VsAI       *bool    `json:"vs_ai,omitempty"`
	Seed       int64    `json:"seed,omitempty"`
}
