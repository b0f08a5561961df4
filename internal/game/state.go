package game

import "github.com/lockhart/holdem/internal/deck"

// PlayerView is one seat as visible to everyone at the table. Hole
// cards stay empty until that seat shows down.
type PlayerView struct {
	Seat      int      `json:"seat"`
	ID        string   `json:"id"`
	Chips     int      `json:"chips"`
	Status    string   `json:"status"`
	StreetBet int      `json:"street_bet"`
	TotalBet  int      `json:"total_bet"`
	HoleCards []string `json:"hole_cards,omitempty"`
}

// PotView is one pot layer with eligibility by player ID.
type PotView struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

// PublicState is the per-table visible view of a hand: everything
// except unrevealed hole cards.
type PublicState struct {
	HandID     string       `json:"hand_id"`
	Street     string       `json:"street"`
	Board      []string     `json:"board"`
	Pots       []PotView    `json:"pots"`
	TotalPot   int          `json:"total_pot"`
	CurrentBet int          `json:"current_bet"`
	MinRaise   int          `json:"min_raise"`
	ToAct      string       `json:"to_act,omitempty"`
	Complete   bool         `json:"complete"`
	Players    []PlayerView `json:"players"`
}

// PublicState renders the hand for broadcast. Hole cards appear only
// for seats revealed at showdown.
func (h *Hand) PublicState() PublicState {
	s := PublicState{
		HandID:   h.ID,
		Street:   h.Street.String(),
		Board:    deck.Codes(h.Board),
		Complete: h.IsComplete(),
	}
	if h.Betting != nil {
		s.CurrentBet = h.Betting.CurrentBet
		s.MinRaise = h.Betting.MinRaise
	}
	if h.ToAct != -1 {
		s.ToAct = h.Players[h.ToAct].ID
	}
	for _, pot := range h.Pots() {
		view := PotView{Amount: pot.Amount}
		for _, seat := range pot.Eligible {
			view.Eligible = append(view.Eligible, h.Players[seat].ID)
		}
		s.Pots = append(s.Pots, view)
		s.TotalPot += pot.Amount
	}
	for _, p := range h.Players {
		view := PlayerView{
			Seat:      p.Seat,
			ID:        p.ID,
			Chips:     p.Chips,
			Status:    p.Status.String(),
			StreetBet: p.StreetBet,
			TotalBet:  p.TotalBet,
		}
		if h.revealed[p.Seat] {
			view.HoleCards = deck.Codes(p.HoleCards)
		}
		s.Players = append(s.Players, view)
	}
	return s
}

// HoleCardsFor returns the private cards for one seat, for that
// player's own view.
func (h *Hand) HoleCardsFor(seat int) []string {
	if seat < 0 || seat >= len(h.Players) {
		return nil
	}
	return deck.Codes(h.Players[seat].HoleCards)
}

// SeatResult is one seat's outcome of a settled hand.
type SeatResult struct {
	Seat      int      `json:"seat"`
	PlayerID  string   `json:"id"`
	Winnings  int      `json:"winnings"`
	Delta     int      `json:"delta"`
	HoleCards []string `json:"hole_cards,omitempty"` // only if shown
	Hand      string   `json:"hand,omitempty"`       // only if shown
}

// Result reports the settled outcome per seat. Valid only once the
// hand is complete. Hands mucked without a showdown stay hidden.
func (h *Hand) Result() ([]SeatResult, error) {
	if !h.IsComplete() {
		return nil, errorf(IllegalAction, "hand still in progress")
	}

	results := make([]SeatResult, 0, len(h.Players))
	for _, p := range h.Players {
		r := SeatResult{
			Seat:     p.Seat,
			PlayerID: p.ID,
			Winnings: h.winnings[p.Seat],
			Delta:    h.winnings[p.Seat] - p.TotalBet,
		}
		if h.revealed[p.Seat] {
			r.HoleCards = deck.Codes(p.HoleCards)
			if res, ok := h.results[p.Seat]; ok {
				r.Hand = res.Description()
			}
		}
		results = append(results, r)
	}
	return results, nil
}
