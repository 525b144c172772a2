package email

import (
	"strings"
	"time"

	"github.com/example/supplychain-events/internal/notification"
)

// BuildNotificationBody renders the plaintext body: type, message, id and
// timestamp, nothing else. Deliberately dumb aggregation, no summarization.
func BuildNotificationBody(event notification.Event) string {
	var sb strings.Builder
	sb.WriteString("Hello,\n\n")
	sb.WriteString("Type: " + event.Type + "\n")
	sb.WriteString("Message: " + event.Message + "\n")
	sb.WriteString("Notification ID: " + event.NotificationID + "\n")
	sb.WriteString("Timestamp: " + event.Timestamp.Format(time.RFC3339) + "\n\n")
	sb.WriteString("Regards,\n")
	sb.WriteString("Supply Chain & Inventory Management System")
	return sb.String()
}
