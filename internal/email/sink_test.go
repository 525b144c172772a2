package email

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/supplychain-events/internal/notification"
)

type recordingSender struct {
	sent []notification.Event
	err  error
}

func (r *recordingSender) SendNotification(event notification.Event) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, event)
	return nil
}

func TestSink_HandleNotification(t *testing.T) {
	sender := &recordingSender{}
	sink := NewSink(sender)

	event := notification.Event{
		NotificationID: "n-1",
		UserEmail:      "customer@example.com",
		Message:        "Order event: {}",
		Type:           "ORDER_CREATED",
		Timestamp:      time.Now(),
	}
	value, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, sink.HandleNotification(context.Background(), []byte("n-1"), value))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "n-1", sender.sent[0].NotificationID)
	assert.Equal(t, "ORDER_CREATED", sender.sent[0].Type)
}

func TestSink_DropsUndecodablePayload(t *testing.T) {
	sender := &recordingSender{}
	sink := NewSink(sender)

	err := sink.HandleNotification(context.Background(), nil, []byte("not json"))

	// Offset advances, nothing is sent.
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestSink_SendFailureIsDropped(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp unreachable")}
	sink := NewSink(sender)

	value, err := json.Marshal(notification.Event{NotificationID: "n-1"})
	require.NoError(t, err)

	assert.NoError(t, sink.HandleNotification(context.Background(), nil, value))
}

func TestBuildNotificationBody(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	event := notification.Event{
		NotificationID: "n-1",
		Message:        "Inventory event: {\"sku\":\"A1\"}",
		Type:           "LOW_STOCK",
		Timestamp:      ts,
	}

	body := BuildNotificationBody(event)

	assert.Equal(t, "Hello,\n\n"+
		"Type: LOW_STOCK\n"+
		"Message: Inventory event: {\"sku\":\"A1\"}\n"+
		"Notification ID: n-1\n"+
		"Timestamp: 2025-03-14T09:26:53Z\n\n"+
		"Regards,\n"+
		"Supply Chain & Inventory Management System", body)
}
