package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChangeAction discriminates record change messages on the shared queue.
type ChangeAction string

const (
	ActionSync   ChangeAction = "sync"
	ActionDelete ChangeAction = "delete"
)

// RecordChangeMessage is a lightweight notification that an expense record
// changed. It carries only identifiers; the worker fetches the full record
// from the database before mirroring it to the backup sheet.
type RecordChangeMessage struct {
	Action    ChangeAction `json:"action"`
	ID        uuid.UUID    `json:"id"`
	OwnerID   uuid.UUID    `json:"ownerId,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewRecordSyncMessage creates a message announcing a created or updated record.
func NewRecordSyncMessage(id, ownerID uuid.UUID) *RecordChangeMessage {
	return &RecordChangeMessage{
		Action:    ActionSync,
		ID:        id,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
	}
}

// NewRecordDeleteMessage creates a message announcing a deleted record.
func NewRecordDeleteMessage(id uuid.UUID) *RecordChangeMessage {
	return &RecordChangeMessage{
		Action:    ActionDelete,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
