package evaluator

import (
	"testing"

	"github.com/lockhart/holdem/internal/deck"
)

func mustCards(t *testing.T, codes ...string) []deck.Card {
	t.Helper()
	cards := make([]deck.Card, len(codes))
	for i, code := range codes {
		c, err := deck.Parse(code)
		if err != nil {
			t.Fatalf("parsing %q: %v", code, err)
		}
		cards[i] = c
	}
	return cards
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		category Category
		tieBreak []int
	}{
		{
			name:     "high card",
			cards:    []string{"AS", "KD", "9H", "7C", "5S", "3D", "2H"},
			category: HighCard,
			tieBreak: []int{14, 13, 9, 7, 5},
		},
		{
			name:     "one pair with best kickers",
			cards:    []string{"AS", "AD", "KH", "QC", "JS", "3D", "2H"},
			category: OnePair,
			tieBreak: []int{14, 13, 12, 11},
		},
		{
			name:     "two pair",
			cards:    []string{"AS", "AD", "9H", "9C", "5S", "3D", "2H"},
			category: TwoPair,
			tieBreak: []int{14, 9, 5},
		},
		{
			name:     "three of a kind",
			cards:    []string{"AS", "AD", "AH", "9C", "5S", "3D", "2H"},
			category: ThreeOfAKind,
			tieBreak: []int{14, 9, 5},
		},
		{
			name:     "straight",
			cards:    []string{"9S", "8D", "7H", "6C", "5S", "AD", "2H"},
			category: Straight,
			tieBreak: []int{9},
		},
		{
			name:     "wheel counts as five-high",
			cards:    []string{"AS", "2D", "3H", "4C", "5S", "9D", "JH"},
			category: Straight,
			tieBreak: []int{5},
		},
		{
			name:     "flush",
			cards:    []string{"AS", "JS", "9S", "7S", "3S", "KD", "QD"},
			category: Flush,
			tieBreak: []int{14, 11, 9, 7, 3},
		},
		{
			name:     "full house",
			cards:    []string{"AS", "AD", "AH", "9C", "9S", "3D", "2H"},
			category: FullHouse,
			tieBreak: []int{14, 9},
		},
		{
			name:     "four of a kind",
			cards:    []string{"AS", "AD", "AH", "AC", "9S", "3D", "2H"},
			category: FourOfAKind,
			tieBreak: []int{14, 9},
		},
		{
			name:     "straight flush",
			cards:    []string{"9S", "8S", "7S", "6S", "5S", "AD", "2H"},
			category: StraightFlush,
			tieBreak: []int{9},
		},
		{
			name:     "royal flush",
			cards:    []string{"AS", "KS", "QS", "JS", "TS", "2D", "3H"},
			category: StraightFlush,
			tieBreak: []int{14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(mustCards(t, tt.cards...))
			if r.Category != tt.category {
				t.Fatalf("category = %v, want %v (result %v)", r.Category, tt.category, r)
			}
			if len(r.TieBreak) < len(tt.tieBreak) {
				t.Fatalf("tie break %v shorter than want %v", r.TieBreak, tt.tieBreak)
			}
			for i, want := range tt.tieBreak {
				if r.TieBreak[i] != want {
					t.Errorf("tie break[%d] = %d, want %d (full %v)", i, r.TieBreak[i], want, r.TieBreak)
				}
			}
		})
	}
}

// The evaluator must pick the best five across both hole cards and the
// board, not just the most obvious combination.
func TestEvaluatePicksBestSubset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		category Category
	}{
		{
			// Trip aces are on the table but the heart flush is better.
			name:     "flush over board trips",
			cards:    []string{"2H", "3H", "AH", "KH", "QH", "AS", "AD"},
			category: Flush,
		},
		{
			// Two pair is tempting but the six-high straight outranks it.
			name:     "straight over two pair",
			cards:    []string{"6S", "6D", "5H", "4C", "3S", "2D", "2H"},
			category: Straight,
		},
		{
			// Two sets of trips make a full house, not three of a kind.
			name:     "full house from double trips",
			cards:    []string{"KS", "KD", "KH", "9S", "9C", "9D", "2S"},
			category: FullHouse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(mustCards(t, tt.cards...))
			if r.Category != tt.category {
				t.Errorf("category = %v, want %v (result %v)", r.Category, tt.category, r)
			}
		})
	}
}

func TestCompareOrdersCategories(t *testing.T) {
	t.Parallel()

	// Ascending strength; every hand must beat all before it.
	ladder := [][]string{
		{"AS", "KD", "9H", "7C", "5S", "3D", "2H"}, // high card
		{"AS", "AD", "KH", "QC", "JS", "3D", "2H"}, // pair
		{"AS", "AD", "9H", "9C", "5S", "3D", "2H"}, // two pair
		{"AS", "AD", "AH", "9C", "5S", "3D", "2H"}, // trips
		{"9S", "8D", "7H", "6C", "5S", "AD", "2H"}, // straight
		{"AS", "JS", "9S", "7S", "3S", "KD", "QD"}, // flush
		{"AS", "AD", "AH", "9C", "9S", "3D", "2H"}, // full house
		{"AS", "AD", "AH", "AC", "9S", "3D", "2H"}, // quads
		{"9S", "8S", "7S", "6S", "5S", "AD", "2H"}, // straight flush
		{"AS", "KS", "QS", "JS", "TS", "2D", "3H"}, // royal flush
	}

	results := make([]Result, len(ladder))
	for i, codes := range ladder {
		results[i] = Evaluate(mustCards(t, codes...))
	}

	for i := 1; i < len(results); i++ {
		for j := 0; j < i; j++ {
			if !results[i].Beats(results[j]) {
				t.Errorf("hand %d (%v) should beat hand %d (%v)", i, results[i], j, results[j])
			}
			if results[j].Compare(results[i]) != -1 {
				t.Errorf("hand %d should lose to hand %d", j, i)
			}
		}
	}
}

func TestCompareTieAcrossSuits(t *testing.T) {
	t.Parallel()

	a := Evaluate(mustCards(t, "AS", "JS", "9S", "7S", "3S", "2D", "2H"))
	b := Evaluate(mustCards(t, "AH", "JH", "9H", "7H", "3H", "2S", "2C"))
	if got := a.Compare(b); got != 0 {
		t.Errorf("equal-rank flushes compare %d, want 0", got)
	}

	// Kicker inside the pair category still decides.
	c := Evaluate(mustCards(t, "AS", "AD", "KH", "QC", "JS", "3D", "2H"))
	d := Evaluate(mustCards(t, "AH", "AC", "KD", "QS", "TS", "3C", "2D"))
	if !c.Beats(d) {
		t.Errorf("jack kicker should beat ten kicker")
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	royal := Evaluate(mustCards(t, "AS", "KS", "QS", "JS", "TS", "2D", "3H"))
	if got := royal.Description(); got != "Royal Flush" {
		t.Errorf("royal description = %q", got)
	}
	nine := Evaluate(mustCards(t, "9S", "8S", "7S", "6S", "5S", "AD", "2H"))
	if got := nine.Description(); got != "Straight Flush" {
		t.Errorf("nine-high description = %q", got)
	}
}

func TestEvaluatePanicsOnWrongCount(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for 5-card input")
		}
	}()
	Evaluate(mustCards(t, "AS", "KS", "QS", "JS", "TS"))
}
