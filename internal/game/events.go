package game

import "sync"

// EventType identifies a game event.
type EventType string

const (
	EventHandStart    EventType = "hand_start"
	EventPlayerAction EventType = "player_action"
	EventStreetChange EventType = "street_change"
	EventHandEnd      EventType = "hand_end"
)

// Event is anything the engine announces as a hand progresses.
type Event interface {
	EventType() EventType
}

// HandStartEvent is published when blinds are posted and cards dealt.
type HandStartEvent struct {
	HandID  string
	Button  int
	Players []string
}

func (HandStartEvent) EventType() EventType { return EventHandStart }

// PlayerActionEvent is published after a validated player action.
type PlayerActionEvent struct {
	HandID   string
	Seat     int
	PlayerID string
	Action   Action
	Amount   int
	Street   Street
	PotAfter int
}

func (PlayerActionEvent) EventType() EventType { return EventPlayerAction }

// StreetChangeEvent is published when a street closes and community
// cards are dealt.
type StreetChangeEvent struct {
	HandID string
	Street Street
	Board  []string // card codes
}

func (StreetChangeEvent) EventType() EventType { return EventStreetChange }

// HandEndEvent is published once the pot has been settled.
type HandEndEvent struct {
	HandID   string
	Street   Street         // Showdown or HandComplete
	Winnings map[int]int    // seat -> chips won
	Revealed map[int]string // seat -> shown hand description
}

func (HandEndEvent) EventType() EventType { return EventHandEnd }

// Bus fans game events out to subscribers. Publishing happens on the
// hand's single writer goroutine, so handlers must not re-enter the
// engine.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all future events.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers an event to every subscriber in order.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(e)
	}
}
