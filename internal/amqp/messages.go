package amqp

import (
	"encoding/json"
	"time"
)

// CollectionChangedMessage announces that a collection was saved. Records
// carries the saved JSON array as-is.
type CollectionChangedMessage struct {
	Collection string          `json:"collection"`
	Count      int             `json:"count"`
	Records    json.RawMessage `json:"records"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewCollectionChangedMessage counts the records in payload. A payload that
// is not a JSON array gets a count of -1. savedAt is when the collection was
// written, not when the message is sent.
func NewCollectionChangedMessage(collection string, payload []byte, savedAt time.Time) *CollectionChangedMessage {
	count := -1
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err == nil {
		count = len(items)
	}
	return &CollectionChangedMessage{
		Collection: collection,
		Count:      count,
		Records:    json.RawMessage(payload),
		Timestamp:  savedAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *CollectionChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CollectionChangedMessageFromJSON(data []byte) (*CollectionChangedMessage, error) {
	var msg CollectionChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
