package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a draw asks for more cards than remain.
// With six players a hand consumes at most 20 cards (12 hole, 3 burn,
// 5 board), so hitting this indicates a bug rather than bad luck.
var ErrExhausted = errors.New("deck exhausted")

// Deck holds the undealt remainder of a shuffled 52-card deck.
// Cards already drawn are disjoint from the remaining contents.
type Deck struct {
	cards []Card
}

// New creates a freshly shuffled 52-card deck. The shuffle is a
// Fisher-Yates permutation over the supplied RNG so that deals are
// reproducible from a seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.shuffle(rng)
	return d
}

// NewOrdered creates an unshuffled deck in a fixed suit-then-rank order.
// Tests use this to arrange exact deals.
func NewOrdered() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// Stacked creates a deck that deals the given cards in order.
// It does not check for duplicates; that is the test's job.
func Stacked(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns n cards from the top of the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrExhausted, n, len(d.cards))
	}
	cards := d.cards[:n]
	d.cards = d.cards[n:]
	return cards, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
