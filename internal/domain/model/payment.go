package model

import "time"

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created" // order registered on the gateway, awaiting checkout
	OrderStatusPaid    OrderStatus = "paid"    // a verified payment references this order
)

// Order is the gateway-side record of one checkout attempt. The gateway owns
// the canonical copy; we keep a local row for administration only.
type Order struct {
	ID        string // opaque gateway order id, e.g. "order_abc"
	Amount    int64  // minor units (paise), gateways operate on integers
	Currency  string // ISO 4217
	Receipt   string // display receipt, best-effort unique
	Status    OrderStatus
	CreatedAt time.Time
}

type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccess    PaymentStatus = "success"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Payment is the result of a user completing checkout against an Order.
// It is trusted only after signature verification succeeds.
type Payment struct {
	ID         string // UUID, local record id
	OrderID    string // gateway order id
	PaymentID  string // gateway payment id, e.g. "pay_xyz"
	Signature  string // gateway-issued HMAC, kept for audit
	Amount     int64  // minor units, echoed from the widget callback (unauthenticated)
	Currency   string
	Status     PaymentStatus
	Method     string // card | upi | netbanking ... as reported by the widget
	Email      string
	Contact    string
	VerifiedAt time.Time // server-side timestamp set at verification
}

// RefundRequest is a notification relay record. No amount is carried: the
// administrator processes the actual refund out-of-band.
type RefundRequest struct {
	ID        string // UUID
	PaymentID string
	Reason    string
	Email     string // optional requester contact
	CreatedAt time.Time
}
