package game

import (
	"fmt"
	"sort"

	"github.com/lockhart/holdem/internal/evaluator"
)

// Pot is one layer of the pot: an amount and the seats that can win it.
// Folded players' chips stay in the layer amounts but folded players
// are never eligible.
type Pot struct {
	Amount   int
	Eligible []int // seats, ascending
}

// BuildPots layers the pot from every player's total-hand contribution.
// For each distinct positive contribution level L (ascending), the
// layer holds (L - previous level) chips from every player who
// contributed at least L, and is winnable by the non-folded among
// them. Adjacent layers with identical eligibility are merged, so a
// folded player's contribution never splits the pot cosmetically, and
// a layer nobody can win any longer folds into the nearest contested
// one.
//
// Invariant: the sum of all layer amounts equals the sum of all
// contributions, at any point in the hand.
func BuildPots(players []*Player) []Pot {
	levelSet := make(map[int]bool)
	for _, p := range players {
		if p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var pots []Pot
	dead := 0
	prev := 0
	for _, level := range levels {
		layer := Pot{}
		for _, p := range players {
			if p.TotalBet >= level {
				layer.Amount += level - prev
				if p.InHand() {
					layer.Eligible = append(layer.Eligible, p.Seat)
				}
			}
		}
		prev = level

		// A layer whose contributors have all folded is dead money,
		// not a pot of its own: a force-folded bettor can out-
		// contribute every short all-in caller. It rolls into the
		// nearest contested layer.
		if len(layer.Eligible) == 0 {
			dead += layer.Amount
			continue
		}
		layer.Amount += dead
		dead = 0

		if len(pots) > 0 && sameSeats(pots[len(pots)-1].Eligible, layer.Eligible) {
			pots[len(pots)-1].Amount += layer.Amount
		} else {
			pots = append(pots, layer)
		}
	}

	if dead > 0 {
		if len(pots) > 0 {
			pots[len(pots)-1].Amount += dead
			return pots
		}
		// Every contributor folded; whoever is still in the hand
		// contests the money.
		pot := Pot{Amount: dead}
		for _, p := range players {
			if p.InHand() {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		pots = append(pots, pot)
	}
	return pots
}

// PotTotal sums all layer amounts.
func PotTotal(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

// Distribute settles every pot layer and returns the chips won per
// seat. results must cover every eligible seat. order fixes the
// positional sequence for odd chips: ties split evenly and any
// remainder goes one chip at a time to winners in `order` sequence,
// which the engine sets to clockwise-from-the-small-blind.
//
// A layer with no eligible seat means the allocator was fed malformed
// contributions, which is a bug; it panics rather than losing chips.
func Distribute(pots []Pot, results map[int]evaluator.Result, order []int) map[int]int {
	winnings := make(map[int]int)

	for _, pot := range pots {
		if len(pot.Eligible) == 0 {
			panic(fmt.Sprintf("pot layer of %d chips has no eligible winner", pot.Amount))
		}

		// Sole eligible player takes the layer without a showdown.
		if len(pot.Eligible) == 1 {
			winnings[pot.Eligible[0]] += pot.Amount
			continue
		}

		var winners []int
		var best evaluator.Result
		for _, seat := range pot.Eligible {
			r, ok := results[seat]
			if !ok {
				panic(fmt.Sprintf("no hand result for eligible seat %d", seat))
			}
			if len(winners) == 0 {
				winners = []int{seat}
				best = r
				continue
			}
			switch r.Compare(best) {
			case 1:
				winners = []int{seat}
				best = r
			case 0:
				winners = append(winners, seat)
			}
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for _, seat := range sortByOrder(winners, order) {
			winnings[seat] += share
			if remainder > 0 {
				winnings[seat]++
				remainder--
			}
		}
	}

	return winnings
}

// sortByOrder returns seats arranged by their position in order.
func sortByOrder(seats, order []int) []int {
	pos := make(map[int]int, len(order))
	for i, seat := range order {
		pos[seat] = i
	}
	out := append([]int(nil), seats...)
	sort.Slice(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out
}

func sameSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
