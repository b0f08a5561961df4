package game

import "github.com/lockhart/holdem/internal/deck"

// Status is a player's standing within the current hand.
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
	StatusSittingOut
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all_in"
	case StatusSittingOut:
		return "sitting_out"
	default:
		return "unknown"
	}
}

// Player is one seat's state within a hand. Chips are integer minor
// units. StreetBet resets each street; TotalBet accumulates across the
// hand and drives the side-pot math.
type Player struct {
	Seat      int
	ID        string
	Chips     int
	HoleCards []deck.Card
	Status    Status
	StreetBet int
	TotalBet  int
}

// CanAct reports whether the player may still act voluntarily.
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// InHand reports whether the player still contests the pot.
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// commit moves up to n chips from the stack into the current bet,
// flipping the player to all-in when the stack empties. Returns the
// amount actually committed.
func (p *Player) commit(n int) int {
	if n > p.Chips {
		n = p.Chips
	}
	p.Chips -= n
	p.StreetBet += n
	p.TotalBet += n
	if p.Chips == 0 && p.Status == StatusActive {
		p.Status = StatusAllIn
	}
	return n
}
