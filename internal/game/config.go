package game

import "time"

// Mode selects the table's economic rules. Tournament tables refuse
// rebuys between hands; busted players sit out instead.
type Mode int

const (
	CashGame Mode = iota
	Tournament
)

func (m Mode) String() string {
	switch m {
	case CashGame:
		return "cash_game"
	case Tournament:
		return "tournament"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as it appears in config files.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cash_game", "":
		return CashGame, nil
	case "tournament":
		return Tournament, nil
	default:
		return 0, errorf(InvalidConfiguration, "unknown game mode %q", s)
	}
}

// Config holds the per-table rules accepted at engine construction.
// All amounts are integer minor units; the engine never touches
// floating point so chip conservation stays exact.
type Config struct {
	SmallBlind   int
	BigBlind     int
	DefaultChips int
	Mode         Mode

	// BurnCards discards one card before each community deal, the way
	// a live dealer would. Purely cosmetic for correctness but kept
	// configurable so stacked-deck tests can address exact cards.
	BurnCards bool

	// DecisionTimeout bounds how long a player may hold up the hand.
	// Zero disables the timeout. On expiry the table applies Check if
	// legal, else Fold, as though the player had submitted it.
	DecisionTimeout time.Duration
}

// DefaultConfig returns a playable cash-game configuration.
func DefaultConfig() Config {
	return Config{
		SmallBlind:   10,
		BigBlind:     20,
		DefaultChips: 1000,
		Mode:         CashGame,
		BurnCards:    true,
	}
}

// Validate checks the blind and stack constraints from the rules.
func (c Config) Validate() error {
	if c.SmallBlind <= 0 {
		return errorf(InvalidConfiguration, "small blind must be positive, got %d", c.SmallBlind)
	}
	if c.BigBlind < c.SmallBlind {
		return errorf(InvalidConfiguration, "big blind %d must be >= small blind %d", c.BigBlind, c.SmallBlind)
	}
	if c.DefaultChips <= 0 {
		return errorf(InvalidConfiguration, "default chips must be positive, got %d", c.DefaultChips)
	}
	if c.DecisionTimeout < 0 {
		return errorf(InvalidConfiguration, "decision timeout must not be negative")
	}
	return nil
}
