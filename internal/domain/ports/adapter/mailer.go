package adapter

import "context"

// Mail is a single outbound notification.
type Mail struct {
	To      string
	ReplyTo string // optional requester address
	Subject string
	Body    string
}

// Mailer is the port for notification delivery. Success means the send call
// returned without error; there is no delivery confirmation.
type Mailer interface {
	Name() string
	Send(ctx context.Context, m Mail) error
}
