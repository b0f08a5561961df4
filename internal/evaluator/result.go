package evaluator

import (
	"fmt"
	"strings"

	"github.com/lockhart/holdem/internal/deck"
)

// Category is the class of a five-card poker hand, ordered weakest to
// strongest. A royal flush is the ace-high straight flush rather than
// its own category.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Result is the ranking of a hand: its category plus an ordered
// tie-break key, most significant rank first. Two Results compare by
// category and then element-wise down the key.
type Result struct {
	Category Category
	TieBreak []int
	Cards    []deck.Card // the five cards that make the hand
}

// Compare returns 1 if r is the stronger hand, -1 if other is, 0 on a
// exact tie. Keys within a category always have equal length, so a
// prefix tie means a full tie.
func (r Result) Compare(other Result) int {
	if r.Category != other.Category {
		if r.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(r.TieBreak) && i < len(other.TieBreak); i++ {
		if r.TieBreak[i] != other.TieBreak[i] {
			if r.TieBreak[i] > other.TieBreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Beats reports whether r strictly beats other.
func (r Result) Beats(other Result) bool {
	return r.Compare(other) > 0
}

// Description returns a readable name for the hand, calling out the
// ace-high straight flush as a royal flush.
func (r Result) Description() string {
	if r.Category == StraightFlush && len(r.TieBreak) > 0 && r.TieBreak[0] == int(deck.Ace) {
		return "Royal Flush"
	}
	return r.Category.String()
}

// String returns the description plus the five cards (e.g., "Full House [K♠ K♥ K♦ 2♣ 2♠]")
func (r Result) String() string {
	var cardStrs []string
	for _, c := range r.Cards {
		cardStrs = append(cardStrs, c.String())
	}
	return fmt.Sprintf("%s [%s]", r.Description(), strings.Join(cardStrs, " "))
}
