package notify

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// SendResult reports the outcome of a single send attempt.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Mailer delivers rendered alert emails. Implementations are best-effort:
// the scheduler logs failures and moves on without retrying.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) (SendResult, error)
}

// LogMailer writes would-be emails to the process log instead of sending
// them. It stands in for a real transport in development and tests.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _, textBody string) (SendResult, error) {
	log.Printf("Simulating email to %s: %s", to, subject)
	log.Printf("Email body: %s", textBody)
	return SendResult{Success: true, MessageID: "simulated-" + uuid.NewString()}, nil
}
