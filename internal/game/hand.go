package game

import (
	rand "math/rand/v2"

	"github.com/lockhart/holdem/internal/deck"
	"github.com/lockhart/holdem/internal/evaluator"
)

// Entrant is a player joining a hand: an identity and a stack.
type Entrant struct {
	ID    string
	Chips int
}

// Hand is one complete hand of Hold'em from blinds to settlement.
// It is single-writer: one action is processed to completion before
// the next is accepted, and nothing in it blocks on I/O.
type Hand struct {
	ID      string
	Players []*Player
	Button  int
	Street  Street
	Board   []deck.Card
	Deck    *deck.Deck
	Betting *BettingRound
	ToAct   int // seat to act, -1 when no action is pending

	cfg      Config
	bus      *Bus
	winnings map[int]int
	results  map[int]evaluator.Result
	revealed map[int]bool
}

// HandOption configures a Hand during creation.
type HandOption func(*handOptions)

type handOptions struct {
	deck *deck.Deck
	bus  *Bus
	id   string
}

// WithDeck supplies a pre-arranged deck, overriding the RNG shuffle.
// Tests use this to script exact deals.
func WithDeck(d *deck.Deck) HandOption {
	return func(o *handOptions) { o.deck = d }
}

// WithBus attaches an event bus for hand lifecycle events.
func WithBus(b *Bus) HandOption {
	return func(o *handOptions) { o.bus = b }
}

// WithID sets the hand's identifier.
func WithID(id string) HandOption {
	return func(o *handOptions) { o.id = id }
}

// NewHand deals a new hand: validates the table, posts blinds, deals
// hole cards, and works out who acts first. The RNG is explicit so
// deals are reproducible; production seeds it from a secure source.
func NewHand(rng *rand.Rand, cfg Config, entrants []Entrant, button int, opts ...HandOption) (*Hand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(entrants) < 2 || len(entrants) > 6 {
		return nil, errorf(InvalidConfiguration, "player count must be 2-6, got %d", len(entrants))
	}
	if button < 0 || button >= len(entrants) {
		return nil, errorf(InvalidConfiguration, "button seat %d out of range", button)
	}
	seen := make(map[string]bool)
	for _, e := range entrants {
		if e.ID == "" || seen[e.ID] {
			return nil, errorf(InvalidConfiguration, "player IDs must be unique and non-empty")
		}
		seen[e.ID] = true
		if e.Chips <= 0 {
			return nil, errorf(InvalidConfiguration, "player %s has a non-positive stack", e.ID)
		}
	}

	var o handOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.deck == nil {
		if rng == nil {
			panic("rng is required unless a deck is supplied")
		}
		o.deck = deck.New(rng)
	}

	players := make([]*Player, len(entrants))
	for i, e := range entrants {
		players[i] = &Player{Seat: i, ID: e.ID, Chips: e.Chips, Status: StatusActive}
	}

	h := &Hand{
		ID:       o.id,
		Players:  players,
		Button:   button,
		Street:   Preflop,
		Deck:     o.deck,
		cfg:      cfg,
		bus:      o.bus,
		revealed: make(map[int]bool),
	}

	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}
	h.postBlinds()

	playerIDs := make([]string, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
	}
	h.bus.Publish(HandStartEvent{HandID: h.ID, Button: button, Players: playerIDs})

	if len(players) == 2 {
		// Heads-up the button posts the small blind and acts first.
		h.ToAct = h.nextActor(h.Button)
	} else {
		h.ToAct = h.nextActor((h.Button + 3) % len(players))
	}

	// Blinds can put everyone all-in before a single action.
	if h.ToAct == -1 {
		if err := h.advanceStreets(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hand) dealHoleCards() error {
	for _, p := range h.Players {
		cards, err := h.Deck.Draw(2)
		if err != nil {
			return errorf(DeckExhausted, "dealing hole cards: %v", err)
		}
		p.HoleCards = append([]deck.Card(nil), cards...)
	}
	return nil
}

// postBlinds forces the blind contributions. A short stack posts what
// it can and is all-in immediately; the amount to match stays the full
// big blind.
func (h *Hand) postBlinds() {
	h.Players[h.sbSeat()].commit(h.cfg.SmallBlind)
	h.Players[h.bbSeat()].commit(h.cfg.BigBlind)

	h.Betting = NewBettingRound(len(h.Players), h.cfg.BigBlind, h.bbSeat())
	h.Betting.CurrentBet = h.cfg.BigBlind
}

func (h *Hand) sbSeat() int {
	if len(h.Players) == 2 {
		return h.Button
	}
	return (h.Button + 1) % len(h.Players)
}

func (h *Hand) bbSeat() int {
	if len(h.Players) == 2 {
		return (h.Button + 1) % len(h.Players)
	}
	return (h.Button + 2) % len(h.Players)
}

// IsComplete reports whether the hand has been settled.
func (h *Hand) IsComplete() bool {
	return h.Street == Showdown || h.Street == HandComplete
}

// ValidActions returns the legal actions for the seat to act, or nil
// when no action is pending.
func (h *Hand) ValidActions() []Action {
	if h.IsComplete() || h.ToAct == -1 {
		return nil
	}
	return h.Betting.ValidActions(h.Players[h.ToAct])
}

// DefaultAction is what the table applies when a player times out:
// Check when free, Fold when facing a bet.
func (h *Hand) DefaultAction() Action {
	if h.ToAct == -1 {
		return Check
	}
	if h.Players[h.ToAct].StreetBet == h.Betting.CurrentBet {
		return Check
	}
	return Fold
}

// Apply validates and applies one action from the given seat. For Bet
// and Raise, amount is the street total being raised to, not the
// increment. On rejection the hand state is unchanged and the error
// carries a Kind for the boundary to relay.
func (h *Hand) Apply(seat int, action Action, amount int) error {
	if h.IsComplete() {
		return errorf(IllegalAction, "hand is already complete")
	}
	if seat != h.ToAct {
		return errorf(IllegalAction, "seat %d acted out of turn", seat)
	}
	p := h.Players[seat]
	br := h.Betting

	switch action {
	case Fold:
		p.Status = StatusFolded

	case Check:
		if p.StreetBet != br.CurrentBet {
			return errorf(IllegalAction, "cannot check facing a bet, %d to call", br.CurrentBet-p.StreetBet)
		}

	case Call:
		toCall := br.CurrentBet - p.StreetBet
		if toCall <= 0 {
			return errorf(IllegalAction, "nothing to call")
		}
		p.commit(toCall) // capped at the stack; a short call is all-in

	case Bet:
		if br.CurrentBet != 0 {
			return errorf(IllegalAction, "cannot bet facing a bet of %d, raise instead", br.CurrentBet)
		}
		if amount <= 0 {
			return errorf(IllegalAction, "bet amount must be positive")
		}
		if amount > p.Chips {
			return errorf(InsufficientFunds, "bet of %d exceeds stack of %d", amount, p.Chips)
		}
		if amount < br.BigBlind && amount < p.Chips {
			return errorf(IllegalAction, "bet of %d below minimum %d", amount, br.BigBlind)
		}
		p.commit(amount)
		br.CurrentBet = amount
		if amount >= br.BigBlind {
			br.MinRaise = amount
			br.reopen(seat)
		}

	case Raise:
		if br.CurrentBet == 0 {
			return errorf(IllegalAction, "no bet to raise, bet instead")
		}
		if br.Acted[seat] {
			return errorf(IllegalAction, "betting is not reopened for seat %d", seat)
		}
		needed := amount - p.StreetBet
		if needed > p.Chips {
			return errorf(InsufficientFunds, "raise to %d needs %d more than stack of %d", amount, needed, p.Chips)
		}
		increment := amount - br.CurrentBet
		if increment <= 0 {
			return errorf(IllegalAction, "raise to %d does not exceed current bet of %d", amount, br.CurrentBet)
		}
		if increment < br.MinRaise && needed < p.Chips {
			return errorf(IllegalAction, "raise increment %d below minimum %d", increment, br.MinRaise)
		}
		p.commit(needed)
		br.CurrentBet = amount
		if increment >= br.MinRaise {
			br.MinRaise = increment
			br.reopen(seat)
		}
		// A short all-in raise must still be called but does not
		// reopen betting for players who already acted at the
		// previous level.

	case AllIn:
		if p.Chips == 0 {
			return errorf(IllegalAction, "no chips to commit")
		}
		newTotal := p.StreetBet + p.Chips
		p.commit(p.Chips)
		if newTotal > br.CurrentBet {
			increment := newTotal - br.CurrentBet
			br.CurrentBet = newTotal
			if increment >= br.MinRaise {
				br.MinRaise = increment
				br.reopen(seat)
			}
		}

	default:
		return errorf(IllegalAction, "unknown action")
	}

	br.markActed(seat)

	h.bus.Publish(PlayerActionEvent{
		HandID:   h.ID,
		Seat:     seat,
		PlayerID: p.ID,
		Action:   action,
		Amount:   amount,
		Street:   h.Street,
		PotAfter: h.TotalContributed(),
	})

	return h.advance(seat)
}

// advance moves the turn pointer and closes the street or the hand
// when the action leaves nothing pending.
func (h *Hand) advance(lastSeat int) error {
	if h.inHandCount() == 1 {
		h.finishFoldWin()
		return nil
	}

	h.ToAct = h.nextActor(lastSeat + 1)
	if h.ToAct != -1 && !h.Betting.Complete(h.Players) {
		return nil
	}
	return h.advanceStreets()
}

// advanceStreets deals forward until betting can resume or the hand
// reaches showdown. A street with fewer than two players able to act
// voluntarily deals through without further betting.
func (h *Hand) advanceStreets() error {
	for {
		if err := h.nextStreet(); err != nil {
			return err
		}
		if h.Street == Showdown {
			h.settleShowdown()
			return nil
		}

		for _, p := range h.Players {
			p.StreetBet = 0
		}
		h.Betting = NewBettingRound(len(h.Players), h.cfg.BigBlind, -1)

		if h.actableCount() < 2 {
			h.ToAct = -1
			continue
		}
		h.ToAct = h.nextActor((h.Button + 1) % len(h.Players))
		return nil
	}
}

func (h *Hand) nextStreet() error {
	deal := func(n int) error {
		if h.cfg.BurnCards {
			if _, err := h.Deck.Draw(1); err != nil {
				return errorf(DeckExhausted, "burning before %s: %v", h.Street, err)
			}
		}
		cards, err := h.Deck.Draw(n)
		if err != nil {
			return errorf(DeckExhausted, "dealing %s: %v", h.Street, err)
		}
		h.Board = append(h.Board, cards...)
		return nil
	}

	switch h.Street {
	case Preflop:
		h.Street = Flop
		if err := deal(3); err != nil {
			return err
		}
	case Flop:
		h.Street = Turn
		if err := deal(1); err != nil {
			return err
		}
	case Turn:
		h.Street = River
		if err := deal(1); err != nil {
			return err
		}
	case River:
		h.Street = Showdown
		return nil
	default:
		return nil
	}

	h.bus.Publish(StreetChangeEvent{HandID: h.ID, Street: h.Street, Board: deck.Codes(h.Board)})
	return nil
}

// settleShowdown evaluates every contesting hand and pays out the
// layered pots.
func (h *Hand) settleShowdown() {
	results := make(map[int]evaluator.Result)
	revealed := make(map[int]string)
	for _, p := range h.Players {
		if !p.InHand() {
			continue
		}
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, h.Board...)
		r := evaluator.Evaluate(cards)
		results[p.Seat] = r
		h.revealed[p.Seat] = true
		revealed[p.Seat] = r.Description()
	}

	pots := BuildPots(h.Players)
	h.winnings = Distribute(pots, results, h.oddChipOrder())
	for seat, amount := range h.winnings {
		h.Players[seat].Chips += amount
	}
	h.results = results
	h.ToAct = -1

	h.bus.Publish(HandEndEvent{HandID: h.ID, Street: Showdown, Winnings: h.winnings, Revealed: revealed})
}

// finishFoldWin ends the hand early: the sole remaining player takes
// the whole pot without showing cards.
func (h *Hand) finishFoldWin() {
	var winner *Player
	for _, p := range h.Players {
		if p.InHand() {
			winner = p
			break
		}
	}

	pot := h.TotalContributed()
	winner.Chips += pot
	h.winnings = map[int]int{winner.Seat: pot}
	h.Street = HandComplete
	h.ToAct = -1

	h.bus.Publish(HandEndEvent{HandID: h.ID, Street: HandComplete, Winnings: h.winnings})
}

// ForceFold folds a seat immediately, regardless of turn order. Used
// for exceptional conditions like a player leaving mid-hand. All-in
// players keep their stake and cannot be force-folded.
func (h *Hand) ForceFold(seat int) error {
	if h.IsComplete() || seat < 0 || seat >= len(h.Players) {
		return nil
	}
	p := h.Players[seat]
	if !p.CanAct() {
		return nil
	}
	p.Status = StatusFolded
	h.Betting.markActed(seat)

	if h.inHandCount() == 1 {
		h.finishFoldWin()
		return nil
	}
	if seat == h.ToAct {
		return h.advance(seat)
	}
	if h.Betting.Complete(h.Players) {
		return h.advanceStreets()
	}
	return nil
}

// nextActor finds the first seat at or after from (clockwise) that can
// still act voluntarily, or -1.
func (h *Hand) nextActor(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (h *Hand) actableCount() int {
	count := 0
	for _, p := range h.Players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

func (h *Hand) inHandCount() int {
	count := 0
	for _, p := range h.Players {
		if p.InHand() {
			count++
		}
	}
	return count
}

// oddChipOrder is the documented positional order for odd chips:
// clockwise starting from the small blind.
func (h *Hand) oddChipOrder() []int {
	n := len(h.Players)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		order[i] = (h.sbSeat() + i) % n
	}
	return order
}

// TotalContributed sums every player's total-hand contribution, which
// by the conservation invariant equals the pot.
func (h *Hand) TotalContributed() int {
	total := 0
	for _, p := range h.Players {
		total += p.TotalBet
	}
	return total
}

// TotalChips sums every stack plus, while the hand is live, the pot.
// The value is constant across the hand: settlement only moves the pot
// into a stack.
func (h *Hand) TotalChips() int {
	total := 0
	for _, p := range h.Players {
		total += p.Chips
	}
	if !h.IsComplete() {
		total += h.TotalContributed()
	}
	return total
}

// Pots returns the current pot layers built from live contributions.
func (h *Hand) Pots() []Pot {
	return BuildPots(h.Players)
}

// Winnings returns chips won per seat; empty until the hand completes.
func (h *Hand) Winnings() map[int]int {
	return h.winnings
}
