package notification

import "time"

// TypeUnknown is the fallback discriminator for payloads whose eventType
// cannot be extracted. Extraction degrades to this value, it never fails.
const TypeUnknown = "UNKNOWN_EVENT"

// Event is the normalized notification published downstream for every
// consumed domain event. Instances are ephemeral: produced, published, never
// persisted.
type Event struct {
	NotificationID string    `json:"notificationId"`
	UserEmail      string    `json:"userEmail"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
}
