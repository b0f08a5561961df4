package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lockhart/holdem/internal/game"
	"github.com/lockhart/holdem/internal/randutil"
)

// DealCmd plays hands locally with check/call players, printing each
// event. Useful for smoke-testing rules changes and demoing the
// engine without a server.
type DealCmd struct {
	Players    int   `default:"4" help:"Number of players (2-6)"`
	Hands      int   `default:"1" help:"Number of hands to play"`
	Seed       int64 `help:"Deck RNG seed; 0 seeds from the clock"`
	SmallBlind int   `default:"10" help:"Small blind"`
	BigBlind   int   `default:"20" help:"Big blind"`
	Chips      int   `default:"1000" help:"Starting stack"`
}

func (cmd *DealCmd) Run(logger *log.Logger) error {
	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := game.DefaultConfig()
	cfg.SmallBlind = cmd.SmallBlind
	cfg.BigBlind = cmd.BigBlind
	cfg.DefaultChips = cmd.Chips

	table, err := game.NewTable(cfg, randutil.New(seed), logger)
	if err != nil {
		return err
	}
	for i := 0; i < cmd.Players; i++ {
		if err := table.AddPlayer(fmt.Sprintf("player-%d", i+1), 0); err != nil {
			return err
		}
	}

	table.Bus().Subscribe(func(e game.Event) {
		switch ev := e.(type) {
		case game.PlayerActionEvent:
			logger.Info("action", "street", ev.Street, "player", ev.PlayerID, "action", ev.Action, "pot", ev.PotAfter)
		case game.StreetChangeEvent:
			logger.Info("street", "street", ev.Street, "board", ev.Board)
		case game.HandEndEvent:
			logger.Info("hand over", "winnings", ev.Winnings, "shown", ev.Revealed)
		}
	})

	logger.Info("dealing", "seed", seed, "players", cmd.Players, "hands", cmd.Hands)
	for i := 0; i < cmd.Hands; i++ {
		if err := playHand(table); err != nil {
			return err
		}
		result, err := table.Hand().Result()
		if err != nil {
			return err
		}
		for _, r := range result {
			logger.Info("result", "player", r.PlayerID, "delta", r.Delta, "hand", r.Hand)
		}
	}
	return nil
}

// playHand runs one hand with every player checking or calling.
func playHand(table *game.Table) error {
	state, err := table.StartHand()
	if err != nil {
		return err
	}
	for !state.Complete {
		state, err = table.ApplyAction(state.ToAct, chooseAction(table.Hand().ValidActions()), 0)
		if err != nil {
			return err
		}
	}
	return nil
}

// chooseAction checks when free and calls when facing a bet.
func chooseAction(actions []game.Action) game.Action {
	for _, want := range []game.Action{game.Check, game.Call} {
		for _, a := range actions {
			if a == want {
				return a
			}
		}
	}
	return game.Fold
}
