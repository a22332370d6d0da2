// Package events publishes domain events to an AMQP broker so downstream
// consumers (notifications, exports) can react to changes without coupling
// to this service.
package events

import (
	"encoding/json"
	"time"
)

// Event types carried in Message.Type.
const (
	TypeExpenseCreated     = "expense.created"
	TypeSettlementRecorded = "settlement.recorded"
)

// Message is the wire format for all published events. Consumers fetch the
// full record from the API by ID; the message itself stays small.
type Message struct {
	Type      string    `json:"type"`
	GroupID   string    `json:"group_id"`
	EntityID  string    `json:"entity_id"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates an event message stamped with the current time.
func NewMessage(eventType, groupID, entityID string, amount float64) *Message {
	return &Message{
		Type:      eventType,
		GroupID:   groupID,
		EntityID:  entityID,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON parses a message from JSON bytes.
func FromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
