// Package mailer delivers notification emails.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. It is the
// sender used until an email provider is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("email recipient is required")
	}
	s.logger.InfoContext(ctx, "email", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}

// ConferenceConfirmation is sent to an organizer once their conference
// has been created.
func ConferenceConfirmation(to, conferenceInfo string) Message {
	return Message{
		To:      to,
		Subject: "You created a new Conference!",
		Body:    "Hi, you have created a following conference:\r\n\r\n" + conferenceInfo,
	}
}
