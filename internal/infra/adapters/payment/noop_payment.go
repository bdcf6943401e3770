package payment

import (
	"context"
	"crypto/hmac"
	"fmt"
	"sync"

	"ai-mock-interview/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopPaymentGateway)(nil)

// noopSecret keys the dev gateway's signatures so a dev client can forge
// valid checkout callbacks locally.
const noopSecret = "noop-dev-secret"

// NoopPaymentGateway is a simple in-memory gateway for dev mode and tests.
type NoopPaymentGateway struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]int64 // order id -> amount in minor units
}

func NewNoopPaymentGateway() *NoopPaymentGateway {
	return &NoopPaymentGateway{orders: make(map[string]int64)}
}

func (g *NoopPaymentGateway) Name() string  { return "noop" }
func (g *NoopPaymentGateway) KeyID() string { return "rzp_test_noop" }

func (g *NoopPaymentGateway) next() string {
	g.seq++
	return fmt.Sprintf("order_noop_%d", g.seq)
}

func (g *NoopPaymentGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (adapter.CreatedOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next()
	g.orders[id] = amountMinor
	return adapter.CreatedOrder{
		OrderID:  id,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *NoopPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(signPair(noopSecret, orderID, paymentID)))
}

// SignForTest produces the signature the noop gateway accepts.
func (g *NoopPaymentGateway) SignForTest(orderID, paymentID string) string {
	return signPair(noopSecret, orderID, paymentID)
}
