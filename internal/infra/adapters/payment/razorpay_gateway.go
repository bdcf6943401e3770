// File: internal/infra/adapters/payment/razorpay_gateway.go
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"ai-mock-interview/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway on the official SDK for
// order creation. Signature verification is local: the widget's signature is
// an HMAC-SHA256 over "orderID|paymentID" keyed with the account secret.
type RazorpayGateway struct {
	keyID  string
	secret string
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) (*RazorpayGateway, error) {
	if keyID == "" {
		return nil, errors.New("razorpay key id empty")
	}
	if keySecret == "" {
		return nil, errors.New("razorpay key secret empty")
	}
	c := razorpay.NewClient(keyID, keySecret)
	// The SDK has no context plumbing; a hard timeout keeps a wedged
	// gateway from holding the handler open.
	c.SetTimeout(15)
	return &RazorpayGateway{keyID: keyID, secret: keySecret, client: c}, nil
}

func (g *RazorpayGateway) Name() string  { return "razorpay" }
func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateOrder registers an order with Razorpay and returns its id.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (adapter.CreatedOrder, error) {
	if err := ctx.Err(); err != nil {
		return adapter.CreatedOrder{}, err
	}
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return adapter.CreatedOrder{}, fmt.Errorf("razorpay order create: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return adapter.CreatedOrder{}, errors.New("razorpay order create: empty order id")
	}
	out := adapter.CreatedOrder{
		OrderID:  id,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}
	// Echo the gateway's own numbers when present.
	if v, ok := body["amount"].(float64); ok {
		out.Amount = int64(v)
	}
	if v, ok := body["currency"].(string); ok && v != "" {
		out.Currency = v
	}
	return out, nil
}

// VerifySignature recomputes the expected HMAC and compares in constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := signPair(g.secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// signPair is hex(HMAC_SHA256(secret, orderID + "|" + paymentID)), the
// gateway's checkout signature recipe.
func signPair(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
