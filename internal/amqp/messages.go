package amqp

import (
	"encoding/json"
	"time"
)

// Change event kinds published when tracked records are written.
const (
	KindTransactionCreated = "transaction_created"
	KindTransactionDeleted = "transaction_deleted"
	KindTargetCreated      = "target_created"
	KindTargetContributed  = "target_contributed"
	KindTargetDeleted      = "target_deleted"
	KindBudgetCreated      = "budget_created"
	KindBudgetDeleted      = "budget_deleted"
)

// ChangeEventMessage is a lightweight notification that a tracked record
// changed. It carries only the kind and record ID; the worker rebuilds the
// report from the database.
type ChangeEventMessage struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeEventMessage creates a change event for the given record
func NewChangeEventMessage(kind string, id int64) *ChangeEventMessage {
	return &ChangeEventMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeEventMessageFromJSON creates a message from JSON bytes
func ChangeEventMessageFromJSON(data []byte) (*ChangeEventMessage, error) {
	var msg ChangeEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
