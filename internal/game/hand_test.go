package game

import (
	"testing"

	"github.com/lockhart/holdem/internal/deck"
)

// stackedHand deals a hand from an exact card sequence: two cards per
// entrant in seat order, then the five board cards. Burns are disabled
// so the sequence maps one-to-one onto the deal.
func stackedHand(t *testing.T, cfg Config, entrants []Entrant, button int, codes ...string) *Hand {
	t.Helper()
	cfg.BurnCards = false
	cards := make([]deck.Card, len(codes))
	for i, code := range codes {
		c, err := deck.Parse(code)
		if err != nil {
			t.Fatalf("parsing %q: %v", code, err)
		}
		cards[i] = c
	}
	h, err := NewHand(nil, cfg, entrants, button, WithDeck(deck.Stacked(cards...)), WithID("h1"))
	if err != nil {
		t.Fatalf("NewHand: %v", err)
	}
	return h
}

func apply(t *testing.T, h *Hand, seat int, action Action, amount int) {
	t.Helper()
	if err := h.Apply(seat, action, amount); err != nil {
		t.Fatalf("seat %d %v %d: %v", seat, action, amount, err)
	}
}

func TestNewHandValidation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	two := []Entrant{{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}}

	tests := []struct {
		name     string
		cfg      Config
		entrants []Entrant
		button   int
	}{
		{name: "one player", cfg: cfg, entrants: two[:1], button: 0},
		{name: "seven players", cfg: cfg, button: 0, entrants: []Entrant{
			{ID: "a", Chips: 100}, {ID: "b", Chips: 100}, {ID: "c", Chips: 100},
			{ID: "d", Chips: 100}, {ID: "e", Chips: 100}, {ID: "f", Chips: 100},
			{ID: "g", Chips: 100},
		}},
		{name: "button out of range", cfg: cfg, entrants: two, button: 2},
		{name: "duplicate IDs", cfg: cfg, button: 0, entrants: []Entrant{
			{ID: "a", Chips: 100}, {ID: "a", Chips: 100},
		}},
		{name: "empty ID", cfg: cfg, button: 0, entrants: []Entrant{
			{ID: "", Chips: 100}, {ID: "b", Chips: 100},
		}},
		{name: "zero stack", cfg: cfg, button: 0, entrants: []Entrant{
			{ID: "a", Chips: 0}, {ID: "b", Chips: 100},
		}},
		{name: "bad blinds", cfg: Config{SmallBlind: 30, BigBlind: 20, DefaultChips: 100}, entrants: two, button: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHand(nil, tt.cfg, tt.entrants, tt.button, WithDeck(deck.NewOrdered()))
			if err == nil {
				t.Fatal("expected an error")
			}
			if KindOf(err) != InvalidConfiguration {
				t.Errorf("error kind = %v, want invalid_configuration", KindOf(err))
			}
		})
	}
}

func TestHeadsUpCheckDown(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", // a
		"2D", "7C", // b
		"AH", "KH", "QH", "JD", "9C",
	)

	// Heads-up the button posts the small blind and opens preflop.
	if h.ToAct != 0 {
		t.Fatalf("preflop ToAct = %d, want button seat 0", h.ToAct)
	}
	if h.Players[0].StreetBet != 10 || h.Players[1].StreetBet != 20 {
		t.Fatalf("blinds = %d/%d, want 10/20", h.Players[0].StreetBet, h.Players[1].StreetBet)
	}

	apply(t, h, 0, Call, 0)
	if h.Street != Preflop {
		t.Fatal("big blind still holds the option; street must not advance")
	}
	apply(t, h, 1, Check, 0)

	// Postflop the non-button seat acts first.
	if h.Street != Flop || h.ToAct != 1 {
		t.Fatalf("street=%v toAct=%d, want flop seat 1", h.Street, h.ToAct)
	}
	for _, street := range []Street{Turn, River, Showdown} {
		apply(t, h, 1, Check, 0)
		apply(t, h, 0, Check, 0)
		if h.Street != street {
			t.Fatalf("street = %v, want %v", h.Street, street)
		}
	}

	if !h.IsComplete() {
		t.Fatal("hand should be complete at showdown")
	}
	// a's two pair beats b's ace high; the 40-chip pot moves over.
	if got := h.Winnings()[0]; got != 40 {
		t.Errorf("winner took %d, want 40", got)
	}
	if h.Players[0].Chips != 1020 || h.Players[1].Chips != 980 {
		t.Errorf("stacks = %d/%d, want 1020/980", h.Players[0].Chips, h.Players[1].Chips)
	}

	results, err := h.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if results[0].Delta != 20 || results[1].Delta != -20 {
		t.Errorf("deltas = %d/%d, want +20/-20", results[0].Delta, results[1].Delta)
	}
	if len(results[0].HoleCards) != 2 || len(results[1].HoleCards) != 2 {
		t.Error("both showdown hands must be revealed")
	}
	if results[0].Hand != "Two Pair" {
		t.Errorf("winning hand = %q, want Two Pair", results[0].Hand)
	}
}

func TestFoldWinEndsHandWithoutReveal(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}, {ID: "c", Chips: 1000},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", "2D", "7C", "9H", "4D",
		"AH", "KH", "QH", "JD", "9C",
	)

	// Button opens three-handed; blinds are seats 1 and 2.
	if h.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", h.ToAct)
	}
	apply(t, h, 0, Fold, 0)
	apply(t, h, 1, Fold, 0)

	if h.Street != HandComplete {
		t.Fatalf("street = %v, want hand_complete", h.Street)
	}
	if got := h.Winnings()[2]; got != 30 {
		t.Errorf("big blind took %d, want the 30-chip pot", got)
	}
	if h.Players[2].Chips != 1010 {
		t.Errorf("big blind stack = %d, want 1010", h.Players[2].Chips)
	}

	results, err := h.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	for _, r := range results {
		if len(r.HoleCards) != 0 {
			t.Errorf("seat %d hole cards revealed on a fold win", r.Seat)
		}
	}
	if results[2].Delta != 10 || results[1].Delta != -10 {
		t.Errorf("deltas = %+d/%+d, want +10/-10", results[2].Delta, results[1].Delta)
	}
}

func TestShortAllInBuildsSidePot(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "short", Chips: 100}, {ID: "mid", Chips: 300}, {ID: "deep", Chips: 300},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "AD", // short: aces hold up for the main pot
		"KH", "KD", // mid: kings take the side pot
		"QS", "QH", // deep: queens lose everything
		"2H", "7D", "9C", "JS", "3S",
	)

	apply(t, h, 0, AllIn, 0) // all-in for 100
	apply(t, h, 1, Call, 0)
	apply(t, h, 2, Call, 0)

	if h.Street != Flop {
		t.Fatalf("street = %v, want flop", h.Street)
	}
	apply(t, h, 1, AllIn, 0) // remaining 200
	apply(t, h, 2, Call, 0)

	// Everyone is all-in; the board runs out to showdown.
	if h.Street != Showdown || !h.IsComplete() {
		t.Fatalf("street = %v, want showdown", h.Street)
	}

	want := map[int]int{0: 300, 1: 400}
	for seat, amount := range want {
		if h.Winnings()[seat] != amount {
			t.Errorf("seat %d won %d, want %d", seat, h.Winnings()[seat], amount)
		}
	}
	if h.Players[0].Chips != 300 || h.Players[1].Chips != 400 || h.Players[2].Chips != 0 {
		t.Errorf("stacks = %d/%d/%d, want 300/400/0",
			h.Players[0].Chips, h.Players[1].Chips, h.Players[2].Chips)
	}
	if h.TotalChips() != 700 {
		t.Errorf("chips in play = %d, want 700", h.TotalChips())
	}
}

func TestRoyalTieSplitsWithOddChip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.SmallBlind = 1
	cfg.BigBlind = 2

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}, {ID: "c", Chips: 1000},
	}
	h := stackedHand(t, cfg, entrants, 0,
		"2S", "3S", // a plays the board
		"4D", "5D", // b folds preflop
		"2C", "3C", // c plays the board
		"AH", "KH", "QH", "JH", "TH",
	)

	apply(t, h, 0, Call, 0)
	apply(t, h, 1, Fold, 0)
	apply(t, h, 2, Check, 0)
	for h.Street != Showdown {
		apply(t, h, h.ToAct, Check, 0)
	}

	// Five chips, two royal flushes. The odd chip lands on the first
	// winner clockwise from the small blind: seat 2 before seat 0.
	if got := h.Winnings()[2]; got != 3 {
		t.Errorf("seat 2 took %d, want 3", got)
	}
	if got := h.Winnings()[0]; got != 2 {
		t.Errorf("seat 0 took %d, want 2", got)
	}

	results, err := h.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if results[0].Hand != "Royal Flush" || results[2].Hand != "Royal Flush" {
		t.Errorf("hands = %q/%q, want royal flushes", results[0].Hand, results[2].Hand)
	}
	if len(results[1].HoleCards) != 0 {
		t.Error("folded seat must stay hidden")
	}
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}, {ID: "short", Chips: 150},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", "QD", "QC", "9H", "8H",
		"2H", "7D", "TC", "JS", "3D",
	)

	apply(t, h, 0, Raise, 100) // full raise, min raise becomes 80
	apply(t, h, 1, Call, 0)
	apply(t, h, 2, AllIn, 0) // 150 total: 50 on top, below the minimum

	if h.Betting.CurrentBet != 150 {
		t.Fatalf("current bet = %d, want 150", h.Betting.CurrentBet)
	}
	if h.Betting.MinRaise != 80 {
		t.Errorf("min raise = %d, want 80 after a short all-in", h.Betting.MinRaise)
	}
	if h.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", h.ToAct)
	}

	// Seat 0 already acted at the 100 level, so the short all-in
	// leaves them call-or-fold.
	if err := h.Apply(0, Raise, 300); KindOf(err) != IllegalAction {
		t.Fatalf("reraise after short all-in: err = %v, want illegal_action", err)
	}
	for _, a := range h.ValidActions() {
		if a == Raise {
			t.Error("raise offered despite betting not reopening")
		}
	}

	apply(t, h, 0, Call, 0)
	apply(t, h, 1, Call, 0)
	if h.Street != Flop {
		t.Fatalf("street = %v, want flop", h.Street)
	}
	if got := h.TotalContributed(); got != 450 {
		t.Errorf("pot = %d, want 450", got)
	}
}

func TestFullRaiseReopensBetting(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}, {ID: "c", Chips: 1000},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", "QD", "QC", "9H", "8H",
		"2H", "7D", "TC", "JS", "3D",
	)

	apply(t, h, 0, Raise, 100)
	apply(t, h, 1, Raise, 200) // full raise reopens seat 0
	apply(t, h, 2, Fold, 0)

	if h.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", h.ToAct)
	}
	apply(t, h, 0, Raise, 300)
	apply(t, h, 1, Call, 0)
	if h.Street != Flop {
		t.Fatalf("street = %v, want flop", h.Street)
	}
}

func TestRejectionsLeaveStateUntouched(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}, {ID: "c", Chips: 1000},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", "QD", "QC", "9H", "8H",
		"2H", "7D", "TC", "JS", "3D",
	)
	apply(t, h, 0, Raise, 100)

	before := h.PublicState()

	tests := []struct {
		name   string
		seat   int
		action Action
		amount int
		kind   Kind
	}{
		{name: "out of turn", seat: 2, action: Call, kind: IllegalAction},
		{name: "check facing a bet", seat: 1, action: Check, kind: IllegalAction},
		{name: "raise below minimum", seat: 1, action: Raise, amount: 110, kind: IllegalAction},
		{name: "raise not above bet", seat: 1, action: Raise, amount: 100, kind: IllegalAction},
		{name: "raise beyond stack", seat: 1, action: Raise, amount: 5000, kind: InsufficientFunds},
		{name: "bet while facing a bet", seat: 1, action: Bet, amount: 200, kind: IllegalAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Apply(tt.seat, tt.action, tt.amount)
			if KindOf(err) != tt.kind {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
			after := h.PublicState()
			if after.CurrentBet != before.CurrentBet || after.ToAct != before.ToAct ||
				after.TotalPot != before.TotalPot || after.Street != before.Street {
				t.Errorf("state changed after rejection: %+v vs %+v", after, before)
			}
		})
	}
}

func TestBlindsCanSettleAHand(t *testing.T) {
	t.Parallel()

	// Both stacks disappear into the blinds, so the board runs out
	// with no betting at all.
	entrants := []Entrant{{ID: "a", Chips: 10}, {ID: "b", Chips: 20}}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"2S", "7C", // a
		"AS", "AD", // b
		"3H", "8D", "9C", "JS", "4D",
	)

	if !h.IsComplete() {
		t.Fatalf("street = %v, want an immediate runout", h.Street)
	}
	if h.Players[1].Chips != 30 || h.Players[0].Chips != 0 {
		t.Errorf("stacks = %d/%d, want 0/30", h.Players[0].Chips, h.Players[1].Chips)
	}
}

func TestShortBlindIsAllInForLess(t *testing.T) {
	t.Parallel()

	// The big blind can only post 5 of the 20. The small blind still
	// owes the full big blind to call.
	entrants := []Entrant{{ID: "a", Chips: 1000}, {ID: "b", Chips: 5}}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"2S", "7C",
		"AS", "AD",
		"3H", "8D", "9C", "JS", "4D",
	)

	if h.Players[1].Status != StatusAllIn {
		t.Fatalf("short blind status = %v, want all_in", h.Players[1].Status)
	}
	if h.Betting.CurrentBet != 20 {
		t.Fatalf("current bet = %d, want the full big blind", h.Betting.CurrentBet)
	}

	apply(t, h, 0, Call, 0)
	if !h.IsComplete() {
		t.Fatalf("street = %v, want a runout after the call", h.Street)
	}

	// Only 5 of the caller's 20 are matched; the rest comes back as
	// an uncontested layer.
	if h.Players[1].Chips != 10 {
		t.Errorf("winner stack = %d, want 10", h.Players[1].Chips)
	}
	if h.Players[0].Chips != 995 {
		t.Errorf("caller stack = %d, want 995", h.Players[0].Chips)
	}
	if h.TotalChips() != 1005 {
		t.Errorf("chips in play = %d, want 1005", h.TotalChips())
	}
}

func TestForceFold(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}, {ID: "c", Chips: 1000},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", "QD", "QC", "9H", "8H",
		"2H", "7D", "TC", "JS", "3D",
	)

	// Folding a seat that is not to act keeps the hand moving.
	if err := h.ForceFold(1); err != nil {
		t.Fatalf("ForceFold(1): %v", err)
	}
	if h.Players[1].Status != StatusFolded {
		t.Fatal("seat 1 should be folded")
	}
	if h.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", h.ToAct)
	}

	// Folding the seat to act passes the action on, and the last
	// remaining player wins outright.
	if err := h.ForceFold(0); err != nil {
		t.Fatalf("ForceFold(0): %v", err)
	}
	if h.Street != HandComplete {
		t.Fatalf("street = %v, want hand_complete", h.Street)
	}
	if got := h.Winnings()[2]; got != 30 {
		t.Errorf("survivor took %d, want 30", got)
	}
}

func TestDefaultAction(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{{ID: "a", Chips: 1000}, {ID: "b", Chips: 1000}}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"AS", "KS", "2D", "7C",
		"AH", "KH", "QH", "JD", "9C",
	)

	// The small blind faces the big blind, so the default is a fold.
	if got := h.DefaultAction(); got != Fold {
		t.Fatalf("default = %v, want fold", got)
	}
	apply(t, h, 0, Call, 0)
	// The big blind's bet is matched; checking is free.
	if got := h.DefaultAction(); got != Check {
		t.Fatalf("default = %v, want check", got)
	}
}

// Chip conservation is the invariant everything else hangs off: the
// chips in play never change, whatever sequence of actions happens.
func TestChipConservationThroughHand(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 500}, {ID: "b", Chips: 250}, {ID: "c", Chips: 900},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 1,
		"AS", "KS", "QD", "QC", "9H", "8H",
		"2H", "7D", "TC", "JS", "3D",
	)
	const total = 1650

	steps := []struct {
		seat   int
		action Action
		amount int
	}{
		{1, Call, 0},   // utg three-handed is the seat after the big blind
		{2, Raise, 60}, // small blind raises
		{0, Call, 0},   // big blind calls
		{1, Call, 0},
		{2, Bet, 100}, // flop
		{0, Call, 0},
		{1, AllIn, 0}, // short stack shoves 190 total on the street
		{2, Call, 0},
		{0, Fold, 0}, // leaves one live bettor; the board runs out
	}

	if h.TotalChips() != total {
		t.Fatalf("chips in play = %d at deal, want %d", h.TotalChips(), total)
	}
	for i, s := range steps {
		if h.IsComplete() {
			break
		}
		apply(t, h, s.seat, s.action, s.amount)
		if h.TotalChips() != total {
			t.Fatalf("chips in play = %d after step %d, want %d", h.TotalChips(), i, total)
		}
	}
	for !h.IsComplete() {
		apply(t, h, h.ToAct, Check, 0)
	}
	if h.TotalChips() != total {
		t.Errorf("chips in play = %d settled, want %d", h.TotalChips(), total)
	}
}

// A raiser who is folded out by a disconnect can leave the top
// contribution level with no one eligible when the callers are all-in
// for less. The hand must still settle, with the dead chips going to
// the winner of the highest contested layer.
func TestForceFoldedRaiserSettlesAtShowdown(t *testing.T) {
	t.Parallel()

	entrants := []Entrant{
		{ID: "a", Chips: 1000}, {ID: "b", Chips: 45}, {ID: "c", Chips: 80},
	}
	h := stackedHand(t, DefaultConfig(), entrants, 0,
		"2S", "7C", // a raises and is folded out
		"AS", "AD", // b: aces take the main pot
		"KH", "KD", // c: kings take the side pot and the dead chips
		"3H", "8D", "9C", "JS", "4D",
	)

	apply(t, h, 0, Raise, 100)
	if err := h.ForceFold(0); err != nil {
		t.Fatalf("ForceFold: %v", err)
	}
	apply(t, h, 1, AllIn, 0) // 45 total
	apply(t, h, 2, AllIn, 0) // 80 total

	if h.Street != Showdown || !h.IsComplete() {
		t.Fatalf("street = %v, want showdown", h.Street)
	}

	// Main pot 135 to b; c collects the 70 contested at the 80 level
	// plus a's uncalled 20.
	want := map[int]int{1: 135, 2: 90}
	for seat, amount := range want {
		if h.Winnings()[seat] != amount {
			t.Errorf("seat %d won %d, want %d", seat, h.Winnings()[seat], amount)
		}
	}
	if h.Players[0].Chips != 900 || h.Players[1].Chips != 135 || h.Players[2].Chips != 90 {
		t.Errorf("stacks = %d/%d/%d, want 900/135/90",
			h.Players[0].Chips, h.Players[1].Chips, h.Players[2].Chips)
	}
	if h.TotalChips() != 1125 {
		t.Errorf("chips in play = %d, want 1125", h.TotalChips())
	}
}

func TestDeckExhaustionSurfacesTypedError(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BurnCards = false
	card, _ := deck.Parse("AS")
	_, err := NewHand(nil, cfg, []Entrant{{ID: "a", Chips: 100}, {ID: "b", Chips: 100}}, 0,
		WithDeck(deck.Stacked(card)))
	if KindOf(err) != DeckExhausted {
		t.Errorf("err = %v, want deck_exhausted", err)
	}
}
