package session

import (
	"encoding/json"
	"log"

	"github.com/smartsession/backend/internal/engine"
)

// MessageType tags the outbound wire messages pushed to observers.
type MessageType string

const (
	MsgStateUpdate  MessageType = "state_update"
	MsgSessionEnded MessageType = "session_ended"
	MsgError        MessageType = "error"
)

// StateUpdate is the per-tick fan-out payload. Reasons is populated only
// when the state is CONFUSED, listing the active indicators.
type StateUpdate struct {
	Type        MessageType  `json:"type"`
	State       engine.State `json:"state"`
	TimestampMs int64        `json:"timestampMs"`
	Reasons     []string     `json:"reasons,omitempty"`
}

// SessionEnded signals that no active session backs the observer's
// attachment: the producer detached, or none ever attached.
type SessionEnded struct {
	Type MessageType `json:"type"`
}

// ErrorMessage is sent to a connection that was rejected, e.g. a second
// producer attach for a session that already has one.
type ErrorMessage struct {
	Type  MessageType `json:"type"`
	Error string      `json:"error"`
}

func marshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("message marshal error: %v", err)
		return nil
	}
	return data
}

// EncodeSessionEnded is the serialized session_ended payload.
func EncodeSessionEnded() []byte {
	return marshal(SessionEnded{Type: MsgSessionEnded})
}

// EncodeError is the serialized rejection payload.
func EncodeError(msg string) []byte {
	return marshal(ErrorMessage{Type: MsgError, Error: msg})
}
