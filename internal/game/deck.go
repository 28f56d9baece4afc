package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/peterkuimelis/frontline/internal/log"
)

// Shuffler is the randomness source used to build decks. *rand.Rand
// satisfies it; tests can inject a fixed permutation.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Picker is a Shuffler that can also draw a bounded integer. Used to pick
// random factions.
type Picker interface {
	Shuffler
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed draws one from crypto/rand.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = NewSeed()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSeed returns a non-zero seed read from crypto/rand.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// PlayerName returns the display name for a seat.
func PlayerName(id int, isAI bool) string {
	if isAI {
		return "AI Overlord"
	}
	return fmt.Sprintf("Player %d", id+1)
}

// BuildPlayer assembles a player's deck from the first CardsPerFaction
// heroes of each chosen faction, shuffles it and deals the opening hand.
func BuildPlayer(rng Shuffler, cat *Catalog, id int, name string, factions [2]Faction, isAI bool) (*PlayerState, error) {
	if factions[0] == factions[1] {
		return nil, invalidSetup("factions must differ, got %s twice", factions[0])
	}

	cards := make([]*HeroCard, 0, DeckSize)
	for _, f := range factions {
		roster := cat.Roster(f)
		if len(roster) < CardsPerFaction {
			return nil, invalidSetup("faction %s has %d heroes, need at least %d", f, len(roster), CardsPerFaction)
		}
		for _, t := range roster[:CardsPerFaction] {
			cards = append(cards, NewHeroCard(t, fmt.Sprintf("p%d-%s", id+1, t.ID)))
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &PlayerState{
		ID:       id,
		Name:     name,
		IsAI:     isAI,
		Factions: factions,
		Hand:     append([]*HeroCard(nil), cards[:InitialHandSize]...),
		Deck:     append([]*HeroCard(nil), cards[InitialHandSize:]...),
	}, nil
}

// BuildMatch builds both players and the opening state. Player 1 is always
// human; player 2 is the scripted opponent when vsAI is set.
func BuildMatch(rng Shuffler, cat *Catalog, p1Factions, p2Factions [2]Faction, vsAI bool) (*MatchState, error) {
	p1, err := BuildPlayer(rng, cat, 0, PlayerName(0, false), p1Factions, false)
	if err != nil {
		return nil, fmt.Errorf("build player 1: %w", err)
	}
	p2, err := BuildPlayer(rng, cat, 1, PlayerName(1, vsAI), p2Factions, vsAI)
	if err != nil {
		return nil, fmt.Errorf("build player 2: %w", err)
	}

	s := &MatchState{
		Players:      [2]*PlayerState{p1, p2},
		ActivePlayer: 0,
		Turn:         1,
		Phase:        PhaseDraw,
	}
	s.pushLog(log.NewMatchStartEvent().Details)
	if err := CheckInvariants(s); err != nil {
		return nil, invalidSetup("opening state: %v", err)
	}
	return s, nil
}

// RandomFactions picks two distinct factions.
func RandomFactions(rng Picker) [2]Faction {
	all := AllFactions()
	a := rng.Intn(len(all))
	b := rng.Intn(len(all) - 1)
	if b >= a {
		b++
	}
	return [2]Faction{all[a], all[b]}
}
