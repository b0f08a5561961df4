package game

// Street represents a betting round, plus the two terminal states a
// hand can end in.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	// HandComplete is reached without a showdown, when all but one
	// player has folded.
	HandComplete
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "hand_complete"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseAction parses an action name from the wire.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "allin", "all_in":
		return AllIn, nil
	default:
		return 0, errorf(IllegalAction, "unknown action %q", s)
	}
}

// BettingRound tracks the state of one street's betting: the amount to
// match, the minimum raise increment, and who has acted since the last
// full raise.
type BettingRound struct {
	CurrentBet int // highest street contribution so far
	MinRaise   int // minimum legal raise increment
	BigBlind   int
	BBSeat     int // seat owed the preflop option, -1 after preflop
	BBActed    bool
	Acted      []bool // acted since the last full bet/raise
}

// NewBettingRound creates the betting state for a street. bbSeat is -1
// for postflop streets, where no one holds an option.
func NewBettingRound(numPlayers, bigBlind, bbSeat int) *BettingRound {
	return &BettingRound{
		MinRaise: bigBlind,
		BigBlind: bigBlind,
		BBSeat:   bbSeat,
		Acted:    make([]bool, numPlayers),
	}
}

// markActed records a voluntary action from seat.
func (br *BettingRound) markActed(seat int) {
	if seat >= 0 && seat < len(br.Acted) {
		br.Acted[seat] = true
	}
	if seat == br.BBSeat {
		br.BBActed = true
	}
}

// reopen resets the acted flags after a full raise so everyone gets
// another decision. The raiser keeps their flag.
func (br *BettingRound) reopen(raiser int) {
	for i := range br.Acted {
		br.Acted[i] = false
	}
	br.Acted[raiser] = true
}

// ValidActions returns the actions seat may legally take right now.
// Amount constraints (minimum bet/raise sizes) still apply on top.
func (br *BettingRound) ValidActions(p *Player) []Action {
	if !p.CanAct() {
		return nil
	}

	actions := []Action{Fold}
	toCall := br.CurrentBet - p.StreetBet

	// A seat that already acted since the last full raise may not
	// raise again; a short all-in does not reopen betting for them.
	mayRaise := !br.Acted[p.Seat]

	if toCall == 0 {
		actions = append(actions, Check)
		if br.CurrentBet == 0 {
			if p.Chips >= br.BigBlind {
				actions = append(actions, Bet)
			}
		} else if mayRaise && p.Chips >= br.MinRaise {
			// Big blind option: the bet is matched but can be raised.
			actions = append(actions, Raise)
		}
	} else {
		// A call for less than the full amount is legal and simply
		// puts the caller all-in. A raise is possible up to and
		// including the stack, where it doubles as an all-in.
		actions = append(actions, Call)
		if mayRaise && p.Chips >= toCall+br.MinRaise {
			actions = append(actions, Raise)
		}
	}

	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}
	return actions
}

// Complete reports whether this street's betting is closed: every
// player still able to act voluntarily has acted since the last raise
// and has matched the current bet, and preflop the big blind has had
// their option.
func (br *BettingRound) Complete(players []*Player) bool {
	for seat, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.StreetBet != br.CurrentBet {
			return false
		}
		if !br.Acted[seat] {
			return false
		}
	}

	if br.BBSeat >= 0 && !br.BBActed && players[br.BBSeat].CanAct() {
		return false
	}
	return true
}
