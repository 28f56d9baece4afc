package game

const (
	BoardSlots      = 3
	CardsPerFaction = 5
	DeckSize        = 2 * CardsPerFaction
	InitialHandSize = 4
	DeathLimit      = 10
	MaxLogEntries   = 100
)

// PlayerState represents one player's entire state.
type PlayerState struct {
	ID       int
	Name     string
	IsAI     bool
	Factions [2]Faction

	Deck      []*HeroCard // front of the slice is drawn next
	Hand      []*HeroCard
	Board     [BoardSlots]*HeroCard // nil = empty slot
	DeathPile []*HeroCard

	DeathCounter int
}

// DeckCount returns the number of cards remaining in the deck.
func (p *PlayerState) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *PlayerState) HandCount() int {
	return len(p.Hand)
}

// DrawCard removes the front card from the deck and adds it to the back of
// the hand. Returns the drawn card, or nil if the deck is empty.
func (p *PlayerState) DrawCard() *HeroCard {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[0]
	p.Deck = p.Deck[1:]
	p.Hand = append(p.Hand, card)
	return card
}

// TakeFromHand removes and returns the card at index i of the hand.
func (p *PlayerState) TakeFromHand(i int) *HeroCard {
	card := p.Hand[i]
	hand := make([]*HeroCard, 0, len(p.Hand)-1)
	hand = append(hand, p.Hand[:i]...)
	hand = append(hand, p.Hand[i+1:]...)
	p.Hand = hand
	return card
}

// Bury clears a board slot and moves its card to the death pile.
func (p *PlayerState) Bury(slot int) *HeroCard {
	card := p.Board[slot]
	p.Board[slot] = nil
	p.DeathPile = append(p.DeathPile, card)
	p.DeathCounter++
	return card
}

// FreeSlot returns the index of the first empty board slot, or -1.
func (p *PlayerState) FreeSlot() int {
	for i, c := range p.Board {
		if c == nil {
			return i
		}
	}
	return -1
}

// FreeSlots returns all empty board slot indices.
func (p *PlayerState) FreeSlots() []int {
	var slots []int
	for i, c := range p.Board {
		if c == nil {
			slots = append(slots, i)
		}
	}
	return slots
}

// OccupiedSlots returns all board slot indices holding a hero.
func (p *PlayerState) OccupiedSlots() []int {
	var slots []int
	for i, c := range p.Board {
		if c != nil {
			slots = append(slots, i)
		}
	}
	return slots
}

// HeroCount returns the number of heroes on the board.
func (p *PlayerState) HeroCount() int {
	return len(p.OccupiedSlots())
}

// ReadyAttackers returns the slots whose heroes have not attacked this turn.
func (p *PlayerState) ReadyAttackers() []int {
	var slots []int
	for i, c := range p.Board {
		if c != nil && !c.HasAttacked {
			slots = append(slots, i)
		}
	}
	return slots
}

// CardCount returns the number of cards this player owns across all zones.
func (p *PlayerState) CardCount() int {
	return len(p.Deck) + len(p.Hand) + p.HeroCount() + len(p.DeathPile)
}

// Clone deep-copies the player, including every card instance.
func (p *PlayerState) Clone() *PlayerState {
	cp := *p
	cp.Deck = cloneCards(p.Deck)
	cp.Hand = cloneCards(p.Hand)
	cp.DeathPile = cloneCards(p.DeathPile)
	for i, c := range p.Board {
		cp.Board[i] = c.Clone()
	}
	return &cp
}

func cloneCards(cards []*HeroCard) []*HeroCard {
	if cards == nil {
		return nil
	}
	out := make([]*HeroCard, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// --- MatchState ---

// MatchState holds the complete state of a match. Transitions never mutate
// a MatchState they were given; they return a new one.
type MatchState struct {
	Players      [2]*PlayerState
	ActivePlayer int // 0 or 1: whose turn it is
	Turn         int // 1-based; increments when play wraps back to a new turn
	Phase        Phase
	Logs         []string // newest first, at most MaxLogEntries
}

// Opponent returns the index of the other player.
func (s *MatchState) Opponent(player int) int {
	return 1 - player
}

// Active returns the PlayerState of the player whose turn it is.
func (s *MatchState) Active() *PlayerState {
	return s.Players[s.ActivePlayer]
}

// Defending returns the PlayerState of the player waiting for their turn.
func (s *MatchState) Defending() *PlayerState {
	return s.Players[s.Opponent(s.ActivePlayer)]
}

// Clone deep-copies the whole match.
func (s *MatchState) Clone() *MatchState {
	cp := *s
	for i, p := range s.Players {
		cp.Players[i] = p.Clone()
	}
	cp.Logs = append([]string(nil), s.Logs...)
	return &cp
}

// pushLog prepends a line to the battle log, dropping the oldest entries
// beyond MaxLogEntries.
func (s *MatchState) pushLog(line string) {
	logs := make([]string, 0, min(len(s.Logs)+1, MaxLogEntries))
	logs = append(logs, line)
	for _, l := range s.Logs {
		if len(logs) == MaxLogEntries {
			break
		}
		logs = append(logs, l)
	}
	s.Logs = logs
}
