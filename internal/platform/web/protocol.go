package web

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Server -> client message types.
const (
	MsgState = "state"
	MsgError = "error"
)

// Client intents.
const (
	IntentStart   = "start"
	IntentRestart = "restart"
	IntentJump    = "jump"
	IntentDuck    = "duck"
	IntentDuckEnd = "duck_end"
	IntentTouch   = "touch"
	IntentResize  = "resize"
)

// Envelope wraps every server message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// ClientMessage is one message from the browser. Y and Height are used
// by touch; Width and Height by resize.
type ClientMessage struct {
	Intent string  `json:"intent"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ErrorPayload reports a rejected client message.
type ErrorPayload struct {
	Message string `json:"message"`
}

var errEmptyMessage = errors.New("empty message")

// Encode marshals payload into an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("web: envelope type is empty")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("web: encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeClient parses a client message.
func DecodeClient(b []byte) (ClientMessage, error) {
	if len(b) == 0 {
		return ClientMessage{}, errEmptyMessage
	}
	var m ClientMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return ClientMessage{}, fmt.Errorf("web: decode message: %w", err)
	}
	return m, nil
}
