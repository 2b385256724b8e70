package ws

import (
	"github.com/smartsession/backend/internal/landmark"
)

// Inbound message types on the producer socket.
const MsgFrame = "frame"

// FrameMessage is the producer's per-frame envelope: a type tag around the
// landmark frame schema.
type FrameMessage struct {
	Type string `json:"type"`
	landmark.Frame
}
