package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrExhausted is returned when a deal requests more cards than remain.
// A correctly sized single-hand deck never hits this.
var ErrExhausted = errors.New("deck exhausted")

// Deck is a standard 52-card deck with an explicit random source so
// shuffles are deterministic under test.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// New creates a new shuffled deck using the given RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// Stacked creates an unshuffled deck that deals the given cards in order.
// Remaining cards follow in fixed rank/suit order. Intended for tests
// that need known boards and hole cards.
func Stacked(cards ...Card) *Deck {
	d := &Deck{}

	seen := make(map[Card]bool, len(cards))
	i := 0
	for _, c := range cards {
		if seen[c] {
			panic(fmt.Sprintf("duplicate card %s in stacked deck", c))
		}
		seen[c] = true
		d.cards[i] = c
		i++
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if !seen[c] {
				d.cards[i] = c
				i++
			}
		}
	}

	return d
}

// Shuffle reshuffles the full deck using Fisher-Yates and resets the
// deal position. A nil RNG leaves the deck order untouched.
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards without replacement.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("deal %d with %d remaining: %w", n, d.Remaining(), ErrExhausted)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
