package i

import (
	"net/http"

	"github.com/google/uuid"
)

// Broadcaster fans frames out to everyone watching a room.
type Broadcaster interface {
	Broadcast(room uuid.UUID, recordType byte, payload []byte)
	CloseRoom(room uuid.UUID)
}

// StreamHub is a Broadcaster that can also attach HTTP clients to a room.
type StreamHub interface {
	Broadcaster
	ServeRoom(w http.ResponseWriter, r *http.Request, room uuid.UUID) error
}
