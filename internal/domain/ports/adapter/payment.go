package adapter

import "context"

// CreatedOrder is the gateway's answer to an order-creation call.
type CreatedOrder struct {
	OrderID  string // opaque provider order id
	Amount   int64  // minor units, echoed by the provider
	Currency string
	Receipt  string
}

// PaymentGateway is the hex port for the checkout provider.
type PaymentGateway interface {
	Name() string

	// KeyID returns the public key identifier. It is safe to hand to the
	// client-side widget; the signing secret never leaves the adapter.
	KeyID() string

	// CreateOrder registers a server-side order for amountMinor (smallest
	// currency unit) and returns the provider's order record.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (CreatedOrder, error)

	// VerifySignature reports whether signature authenticates the
	// (orderID, paymentID) pair. Implementations must compare in constant
	// time and must not perform network I/O.
	VerifySignature(orderID, paymentID, signature string) bool
}
