package notify

import (
	"context"

	"github.com/bencare/bencare/pkg/logging"
)

// Result is the delivery envelope a sender reports back.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

// SMSSender delivers a text message to the user's phone.
type SMSSender interface {
	SendSMS(ctx context.Context, userID, content string) (*Result, error)
}

// StubSMSSender is the placeholder for a real messaging integration: it logs
// the message and reports a synthetic success.
type StubSMSSender struct {
	logger *logging.Logger
}

// NewStubSMSSender creates a stub SMS sender.
func NewStubSMSSender(logger *logging.Logger) *StubSMSSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSMSSender{logger: logger}
}

// SendSMS logs but doesn't send.
func (s *StubSMSSender) SendSMS(ctx context.Context, userID, content string) (*Result, error) {
	s.logger.Info("SMS notification", "user_id", userID, "content", content)
	return &Result{Success: true, MessageID: "placeholder"}, nil
}

var _ SMSSender = (*StubSMSSender)(nil)
