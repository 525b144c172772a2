package event

import "os"

// SchemaVersion is stamped into every published event so consumers can
// detect envelope changes. Bump on any incompatible field change.
const SchemaVersion = 1

// Topics maps each event family to its Kafka topic. Resolved once at startup
// and passed by value; topic names never change at runtime.
type Topics struct {
	OrderEvents        string
	InventoryEvents    string
	ShipmentEvents     string
	NotificationEmails string
}

// DefaultTopics returns the topic names used across all services.
func DefaultTopics() Topics {
	return Topics{
		OrderEvents:        "order.events",
		InventoryEvents:    "inventory.events",
		ShipmentEvents:     "shipment.events",
		NotificationEmails: "notification.email.events",
	}
}

// TopicsFromEnv resolves topic names from the environment, falling back to
// the defaults. Every service must use the same resolution so producers and
// consumers agree.
func TopicsFromEnv() Topics {
	t := DefaultTopics()
	if v := os.Getenv("TOPIC_ORDER_EVENTS"); v != "" {
		t.OrderEvents = v
	}
	if v := os.Getenv("TOPIC_INVENTORY_EVENTS"); v != "" {
		t.InventoryEvents = v
	}
	if v := os.Getenv("TOPIC_SHIPMENT_EVENTS"); v != "" {
		t.ShipmentEvents = v
	}
	if v := os.Getenv("TOPIC_NOTIFICATION_EMAILS"); v != "" {
		t.NotificationEmails = v
	}
	return t
}
