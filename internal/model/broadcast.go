package model

// Channel is one live subscriber attached to a room. Send must be safe
// to call from multiple goroutines.
type Channel interface {
	Send(msg BroadcastMessage) error
	Close() error
}

// Broadcaster fans a message out to every live channel of a room.
type Broadcaster interface {
	Broadcast(roomID int64, msg BroadcastMessage)
}

// BroadcastMessage is the outbound frame delivered to room subscribers.
// Timestamp is ISO-8601.
type BroadcastMessage struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
