package server

import "github.com/lockhart/holdem/internal/game"

// Client -> server message types
const (
	TypeJoin   = "join"
	TypeLeave  = "leave"
	TypeRebuy  = "rebuy"
	TypeStart  = "start"
	TypeAction = "action"
	TypeState  = "state"
)

// Server -> client message types
const (
	TypeStateUpdate = "state"
	TypeHoleCards   = "hole_cards"
	TypeResult      = "result"
	TypeJoined      = "joined"
	TypeError       = "error"
)

// ClientMessage is any inbound websocket frame.
type ClientMessage struct {
	Type   string `json:"type"`
	Table  string `json:"table,omitempty"`
	Player string `json:"player,omitempty"`
	Chips  int    `json:"chips,omitempty"`
	Action string `json:"action,omitempty"`
	Amount int    `json:"amount,omitempty"`
}

// ServerMessage is any outbound websocket frame.
type ServerMessage struct {
	Type      string            `json:"type"`
	Table     string            `json:"table,omitempty"`
	State     *game.PublicState `json:"state,omitempty"`
	Cards     []string          `json:"cards,omitempty"`
	Result    []game.SeatResult `json:"result,omitempty"`
	ErrorKind string            `json:"error_kind,omitempty"`
	Message   string            `json:"message,omitempty"`
}

func errorMessage(err error) ServerMessage {
	msg := ServerMessage{Type: TypeError, Message: err.Error()}
	if kind := game.KindOf(err); kind != 0 {
		msg.ErrorKind = kind.String()
	}
	return msg
}
