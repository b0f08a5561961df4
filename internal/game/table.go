package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lockhart/holdem/internal/gameid"
)

// TablePlayer is a seat at the table across hands.
type TablePlayer struct {
	ID         string
	Chips      int
	SittingOut bool
}

// Table runs hand after hand for a fixed group of players: it rotates
// the button, deals players in and out as stacks allow, and carries
// chips between hands. A table is an isolated unit of state; callers
// must serialize actions against it (the server gives each table one
// goroutine).
type Table struct {
	cfg     Config
	rng     *rand.Rand
	logger  *log.Logger
	bus     *Bus
	ids     *gameid.Generator
	players []*TablePlayer
	button  int // index into players, -1 before the first hand
	handNum int
	hand    *Hand
}

// NewTable creates a table with the given rules. The RNG shuffles
// every deck this table deals.
func NewTable(cfg Config, rng *rand.Rand, logger *log.Logger) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		panic("rng is required for table creation")
	}
	return &Table{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		bus:    NewBus(),
		ids:    gameid.NewGenerator(nil),
		button: -1,
	}, nil
}

// Bus returns the table's event bus.
func (t *Table) Bus() *Bus {
	return t.bus
}

// Config returns the table rules.
func (t *Table) Config() Config {
	return t.cfg
}

// AddPlayer seats a player. Chips <= 0 buys in for the configured
// default stack. Joining mid-hand is fine; the player is dealt in next
// hand.
func (t *Table) AddPlayer(id string, chips int) error {
	if id == "" {
		return errorf(InvalidConfiguration, "player ID must not be empty")
	}
	if t.findPlayer(id) != nil {
		return errorf(InvalidConfiguration, "player %s is already seated", id)
	}
	if len(t.players) >= 6 {
		return errorf(InvalidConfiguration, "table is full")
	}
	if chips <= 0 {
		chips = t.cfg.DefaultChips
	}
	t.players = append(t.players, &TablePlayer{ID: id, Chips: chips})
	t.logger.Info("player seated", "player", id, "chips", chips)
	return nil
}

// RemovePlayer unseats a player, folding them out of any live hand.
// Chips they had committed stay in the pot.
func (t *Table) RemovePlayer(id string) error {
	for i, p := range t.players {
		if p.ID != id {
			continue
		}
		if t.hand != nil && !t.hand.IsComplete() {
			if seat := t.handSeat(id); seat != -1 {
				if err := t.hand.ForceFold(seat); err != nil {
					return err
				}
				t.finishHandIfComplete()
			}
		}
		t.players = append(t.players[:i], t.players[i+1:]...)
		if t.button >= len(t.players) {
			t.button = len(t.players) - 1
		}
		t.logger.Info("player left", "player", id)
		return nil
	}
	return errorf(InvalidConfiguration, "player %s is not seated", id)
}

// Rebuy tops up a busted or short stack between hands. Tournament
// tables refuse rebuys.
func (t *Table) Rebuy(id string, chips int) error {
	if t.cfg.Mode == Tournament {
		return errorf(IllegalAction, "rebuys are not allowed in tournament mode")
	}
	if t.hand != nil && !t.hand.IsComplete() {
		return errorf(IllegalAction, "cannot rebuy during a hand")
	}
	if chips <= 0 {
		chips = t.cfg.DefaultChips
	}
	p := t.findPlayer(id)
	if p == nil {
		return errorf(InvalidConfiguration, "player %s is not seated", id)
	}
	p.Chips += chips
	p.SittingOut = false
	t.logger.Info("rebuy", "player", id, "chips", p.Chips)
	return nil
}

// StartHand deals the next hand to every seated player with chips,
// rotating the button, and returns the initial public state.
func (t *Table) StartHand() (PublicState, error) {
	if t.hand != nil && !t.hand.IsComplete() {
		return PublicState{}, errorf(IllegalAction, "a hand is already in progress")
	}

	dealt := make([]int, 0, len(t.players))
	for i, p := range t.players {
		if p.Chips > 0 && !p.SittingOut {
			dealt = append(dealt, i)
		}
	}
	if len(dealt) < 2 {
		return PublicState{}, errorf(InvalidConfiguration, "need at least 2 funded players, have %d", len(dealt))
	}

	t.rotateButton()
	entrants := make([]Entrant, len(dealt))
	button := 0
	for seat, idx := range dealt {
		entrants[seat] = Entrant{ID: t.players[idx].ID, Chips: t.players[idx].Chips}
		if idx == t.button {
			button = seat
		}
	}

	hand, err := NewHand(t.rng, t.cfg, entrants, button,
		WithID(t.ids.Generate()), WithBus(t.bus))
	if err != nil {
		return PublicState{}, err
	}
	t.hand = hand
	t.handNum++
	t.logger.Info("hand started", "hand", hand.ID, "num", t.handNum, "players", len(dealt), "button", button)

	t.finishHandIfComplete() // blinds alone can settle a hand
	return hand.PublicState(), nil
}

// ApplyAction routes a player's action into the live hand and returns
// the updated public state. Rejections leave everything unchanged.
func (t *Table) ApplyAction(id string, action Action, amount int) (PublicState, error) {
	if t.hand == nil || t.hand.IsComplete() {
		return PublicState{}, errorf(IllegalAction, "no hand in progress")
	}
	seat := t.handSeat(id)
	if seat == -1 {
		return PublicState{}, errorf(IllegalAction, "player %s is not in this hand", id)
	}
	if err := t.hand.Apply(seat, action, amount); err != nil {
		return PublicState{}, err
	}
	t.finishHandIfComplete()
	return t.hand.PublicState(), nil
}

// Hand returns the current (possibly settled) hand, or nil.
func (t *Table) Hand() *Hand {
	return t.hand
}

// State returns the public view of the current hand.
func (t *Table) State() (PublicState, error) {
	if t.hand == nil {
		return PublicState{}, errorf(IllegalAction, "no hand has been dealt")
	}
	return t.hand.PublicState(), nil
}

// Players returns the seats in table order.
func (t *Table) Players() []*TablePlayer {
	return t.players
}

// finishHandIfComplete copies settled stacks back to the table seats.
// Busted players sit out; in cash mode a rebuy brings them back.
func (t *Table) finishHandIfComplete() {
	if t.hand == nil || !t.hand.IsComplete() {
		return
	}
	for _, hp := range t.hand.Players {
		p := t.findPlayer(hp.ID)
		if p == nil {
			continue // player left mid-hand
		}
		p.Chips = hp.Chips
		if p.Chips == 0 {
			p.SittingOut = true
		}
	}
}

// rotateButton moves the button to the next funded seat.
func (t *Table) rotateButton() {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		idx := (t.button + i + n) % n
		if t.players[idx].Chips > 0 && !t.players[idx].SittingOut {
			t.button = idx
			return
		}
	}
}

func (t *Table) findPlayer(id string) *TablePlayer {
	for _, p := range t.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// handSeat maps a player ID to their seat in the live hand, or -1.
func (t *Table) handSeat(id string) int {
	if t.hand == nil {
		return -1
	}
	for _, p := range t.hand.Players {
		if p.ID == id {
			return p.Seat
		}
	}
	return -1
}
