package evaluator

import (
	"fmt"
	"sort"

	"github.com/lockhart/holdem/internal/deck"
)

// Evaluate returns the best five-card hand makeable from exactly seven
// cards (two hole cards plus the board). It scores all 21 five-card
// subsets and keeps the maximum. Pure and deterministic; a wrong-sized
// input is a programmer error and panics rather than limping on.
func Evaluate(cards []deck.Card) Result {
	if len(cards) != 7 {
		panic(fmt.Sprintf("evaluator: want 7 cards, got %d", len(cards)))
	}

	var best Result
	five := make([]deck.Card, 0, 5)

	// Choose 5 of 7 by excluding every pair of indices.
	for skipA := 0; skipA < 7; skipA++ {
		for skipB := skipA + 1; skipB < 7; skipB++ {
			five = five[:0]
			for i, c := range cards {
				if i != skipA && i != skipB {
					five = append(five, c)
				}
			}
			r := scoreFive(five)
			if best.Category == 0 || r.Compare(best) > 0 {
				best = r
			}
		}
	}

	return best
}

// scoreFive ranks exactly five cards into a Result.
func scoreFive(five []deck.Card) Result {
	cards := append([]deck.Card(nil), five...)
	sort.Slice(cards, func(i, j int) bool { return cards[i].Rank > cards[j].Rank })

	ranks := make([]int, 5)
	flush := true
	for i, c := range cards {
		ranks[i] = int(c.Rank)
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}

	straightHigh, straight := straightHighCard(ranks)

	// Group ranks by multiplicity, descending within each group.
	var quads, trips, pairs, singles []int
	for i := 0; i < 5; {
		j := i
		for j < 5 && ranks[j] == ranks[i] {
			j++
		}
		switch j - i {
		case 4:
			quads = append(quads, ranks[i])
		case 3:
			trips = append(trips, ranks[i])
		case 2:
			pairs = append(pairs, ranks[i])
		default:
			singles = append(singles, ranks[i])
		}
		i = j
	}

	switch {
	case straight && flush:
		return Result{Category: StraightFlush, TieBreak: []int{straightHigh}, Cards: cards}
	case len(quads) == 1:
		return Result{Category: FourOfAKind, TieBreak: []int{quads[0], singles[0]}, Cards: cards}
	case len(trips) == 1 && len(pairs) == 1:
		return Result{Category: FullHouse, TieBreak: []int{trips[0], pairs[0]}, Cards: cards}
	case flush:
		return Result{Category: Flush, TieBreak: ranks, Cards: cards}
	case straight:
		return Result{Category: Straight, TieBreak: []int{straightHigh}, Cards: cards}
	case len(trips) == 1:
		return Result{Category: ThreeOfAKind, TieBreak: append([]int{trips[0]}, singles...), Cards: cards}
	case len(pairs) == 2:
		return Result{Category: TwoPair, TieBreak: []int{pairs[0], pairs[1], singles[0]}, Cards: cards}
	case len(pairs) == 1:
		return Result{Category: OnePair, TieBreak: append([]int{pairs[0]}, singles...), Cards: cards}
	default:
		return Result{Category: HighCard, TieBreak: ranks, Cards: cards}
	}
}

// straightHighCard detects a five-card run in ranks sorted descending.
// The wheel (A-5-4-3-2) counts as a straight with high card 5, not as
// an ace-high run.
func straightHighCard(ranks []int) (int, bool) {
	for i := 1; i < 5; i++ {
		if ranks[i] == ranks[i-1] {
			return 0, false // duplicate rank, no straight possible
		}
	}
	if ranks[0]-ranks[4] == 4 {
		return ranks[0], true
	}
	if ranks[0] == int(deck.Ace) && ranks[1] == 5 && ranks[1]-ranks[4] == 3 {
		return 5, true
	}
	return 0, false
}
