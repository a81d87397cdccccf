package server

import (
	"encoding/json"
	"time"

	"github.com/lox/cardroom/internal/game"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Client to server messages
	MessageTypeJoin     MessageType = "join"
	MessageTypeLeave    MessageType = "leave"
	MessageTypeAction   MessageType = "action"
	MessageTypeGetState MessageType = "get_state"

	// Server to client messages
	MessageTypeJoined    MessageType = "joined"
	MessageTypeLeft      MessageType = "left"
	MessageTypeGameState MessageType = "game_state"
	MessageTypeYourTurn  MessageType = "your_turn"
	MessageTypeError     MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the base WebSocket message envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type JoinData struct {
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
}

type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Server → Client Messages

type JoinedData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Stack    int    `json:"stack"`
}

type LeftData struct {
	RoomID string `json:"roomId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// YourTurnData tells the acting player what they may legally do
type YourTurnData struct {
	RoomID  string               `json:"roomId"`
	Actions game.PossibleActions `json:"actions"`
}

// Game state messages carry game.StateView as their data, projected
// for the receiving player.
