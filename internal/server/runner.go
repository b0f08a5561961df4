package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lockhart/holdem/internal/game"
)

// Runner serializes all access to one table: every command runs on the
// runner's goroutine, so no two actions against the same hand are ever
// processed concurrently. It also arms the per-decision timeout, which
// resolves via the hand's default action (check if legal, else fold)
// so a disconnected player cannot stall the state machine.
type Runner struct {
	Name string

	table    *game.Table
	cmds     chan func()
	stopped  chan struct{}
	clock    quartz.Clock
	logger   *log.Logger
	onUpdate func(Update)

	timer *quartz.Timer
}

// Update is a snapshot taken after a state mutation, with everything
// the transport needs: the public state, each live player's private
// cards, and the settled result once the hand completes.
type Update struct {
	Table  string
	State  game.PublicState
	Hole   map[string][]string
	Result []game.SeatResult
}

// NewRunner creates a runner for a table. clock is injectable so tests
// can drive timeouts with a mock.
func NewRunner(name string, table *game.Table, clock quartz.Clock, logger *log.Logger) *Runner {
	return &Runner{
		Name:    name,
		table:   table,
		cmds:    make(chan func(), 16),
		stopped: make(chan struct{}),
		clock:   clock,
		logger:  logger.WithPrefix("runner").With("table", name),
	}
}

// OnUpdate registers a callback invoked after every state mutation,
// from the runner goroutine. The callback must not re-enter the
// runner; the server uses it to fan the snapshot out to connections.
func (r *Runner) OnUpdate(fn func(Update)) {
	r.onUpdate = fn
}

// Run processes commands until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)
	for {
		select {
		case cmd := <-r.cmds:
			cmd()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// do executes fn on the runner goroutine and waits for it. Once the
// runner has stopped it returns without running fn, so shutdown never
// strands a connection goroutine.
func (r *Runner) do(fn func()) {
	done := make(chan struct{})
	select {
	case r.cmds <- func() {
		defer close(done)
		fn()
	}:
	case <-r.stopped:
		return
	}
	select {
	case <-done:
	case <-r.stopped:
	}
}

// afterMutation rearms the decision timer and notifies subscribers.
// Runs on the runner goroutine.
func (r *Runner) afterMutation() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	timeout := r.table.Config().DecisionTimeout
	hand := r.table.Hand()
	if timeout > 0 && hand != nil && !hand.IsComplete() && hand.ToAct != -1 {
		handID, seat := hand.ID, hand.ToAct
		r.timer = r.clock.AfterFunc(timeout, func() {
			select {
			case r.cmds <- func() { r.applyTimeout(handID, seat) }:
			case <-r.stopped:
			}
		})
	}

	if r.onUpdate != nil {
		r.onUpdate(r.snapshot())
	}
}

// snapshot builds an Update from the current table state. Runs on the
// runner goroutine.
func (r *Runner) snapshot() Update {
	u := Update{Table: r.Name, Hole: make(map[string][]string)}
	hand := r.table.Hand()
	if hand == nil {
		return u
	}
	u.State = hand.PublicState()
	for _, p := range hand.Players {
		u.Hole[p.ID] = hand.HoleCardsFor(p.Seat)
	}
	if hand.IsComplete() {
		if result, err := hand.Result(); err == nil {
			u.Result = result
		}
	}
	return u
}

// applyTimeout fires the default action if the seat the timer was
// armed for is still the one holding up the hand.
func (r *Runner) applyTimeout(handID string, seat int) {
	hand := r.table.Hand()
	if hand == nil || hand.ID != handID || hand.IsComplete() || hand.ToAct != seat {
		return
	}
	action := hand.DefaultAction()
	player := hand.Players[seat].ID
	r.logger.Info("decision timeout", "hand", handID, "player", player, "action", action)
	if _, err := r.table.ApplyAction(player, action, 0); err != nil {
		r.logger.Error("timeout action rejected", "error", err)
		return
	}
	r.afterMutation()
}

// Join seats a player at the table.
func (r *Runner) Join(player string, chips int) error {
	var err error
	r.do(func() {
		err = r.table.AddPlayer(player, chips)
		if err == nil {
			r.afterMutation()
		}
	})
	return err
}

// Leave unseats a player, folding them out of any live hand.
func (r *Runner) Leave(player string) error {
	var err error
	r.do(func() {
		err = r.table.RemovePlayer(player)
		if err == nil {
			r.afterMutation()
		}
	})
	return err
}

// Rebuy tops up a player's stack between hands.
func (r *Runner) Rebuy(player string, chips int) error {
	var err error
	r.do(func() {
		err = r.table.Rebuy(player, chips)
		if err == nil {
			r.afterMutation()
		}
	})
	return err
}

// StartHand deals the next hand.
func (r *Runner) StartHand() (game.PublicState, error) {
	var state game.PublicState
	var err error
	r.do(func() {
		state, err = r.table.StartHand()
		if err == nil {
			r.afterMutation()
		}
	})
	return state, err
}

// Action applies a player action to the live hand.
func (r *Runner) Action(player string, action game.Action, amount int) (game.PublicState, error) {
	var state game.PublicState
	var err error
	r.do(func() {
		state, err = r.table.ApplyAction(player, action, amount)
		if err == nil {
			r.afterMutation()
		}
	})
	return state, err
}

// State returns the current public state.
func (r *Runner) State() (game.PublicState, error) {
	var state game.PublicState
	var err error
	r.do(func() {
		state, err = r.table.State()
	})
	return state, err
}

// HoleCards returns a player's private cards for the live hand.
func (r *Runner) HoleCards(player string) []string {
	var cards []string
	r.do(func() {
		hand := r.table.Hand()
		if hand == nil {
			return
		}
		for _, p := range hand.Players {
			if p.ID == player {
				cards = hand.HoleCardsFor(p.Seat)
				return
			}
		}
	})
	return cards
}

// Result returns the settled outcome of the last hand.
func (r *Runner) Result() ([]game.SeatResult, error) {
	var result []game.SeatResult
	var err error
	r.do(func() {
		hand := r.table.Hand()
		if hand == nil {
			err = game.Errorf(game.IllegalAction, "no hand has been dealt")
			return
		}
		result, err = hand.Result()
	})
	return result, err
}
