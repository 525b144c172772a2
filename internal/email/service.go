package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/supplychain-events/internal/notification"
)

// Sender delivers one notification email. Satisfied by Service; tests
// substitute fakes.
type Sender interface {
	SendNotification(event notification.Event) error
}

// Service sends notification emails over SMTP to a single recipient fixed at
// deploy time.
type Service struct {
	host string
	port string
	from string
	to   string
}

func NewService(host, port, from, to string) *Service {
	return &Service{host: host, port: port, from: from, to: to}
}

// SendNotification composes the fixed-format plaintext body and sends it.
func (s *Service) SendNotification(event notification.Event) error {
	subject := "Supply chain notification " + event.Type
	return s.send(subject, BuildNotificationBody(event))
}

func (s *Service) send(subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.from, s.to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{s.to}, []byte(msg))
}
