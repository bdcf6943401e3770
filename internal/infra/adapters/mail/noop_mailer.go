package mail

import (
	"context"
	"sync"

	"ai-mock-interview/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*NoopMailer)(nil)

// NoopMailer records sends in memory. Used in dev mode and tests.
type NoopMailer struct {
	mu   sync.Mutex
	sent []adapter.Mail

	SendErr error // set by tests to simulate transport failure
}

func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

func (m *NoopMailer) Name() string { return "noop" }

func (m *NoopMailer) Send(ctx context.Context, msg adapter.Mail) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages.
func (m *NoopMailer) Sent() []adapter.Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]adapter.Mail, len(m.sent))
	copy(out, m.sent)
	return out
}
