// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/adapter"
	"ai-mock-interview/internal/domain/ports/repository"
	"ai-mock-interview/internal/infra/logging"
	"ai-mock-interview/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// VerifyInput is the widget's callback payload. Only OrderID, PaymentID and
// Signature are authenticated; the rest is echoed for display and audit.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
	Amount    int64
	Currency  string
	Email     string
	Contact   string
	Method    string
}

// VerifyResult separates "the signature did not match" (Verified=false, no
// error) from operational failures. Navigation on success is the caller's
// decision, not part of verification.
type VerifyResult struct {
	Verified bool
	Payment  *model.Payment
}

type CheckoutUseCase interface {
	// CreateOrder registers a gateway order for an amount in major currency
	// units and returns the order plus the public key id for the widget.
	CreateOrder(ctx context.Context, amountMajor float64) (*model.Order, string, error)
	// VerifyPayment checks the widget's signature against the recomputed
	// HMAC. Pure function of its inputs; re-verifying is idempotent.
	VerifyPayment(ctx context.Context, in VerifyInput) (*VerifyResult, error)
}

type checkoutUC struct {
	gateway  adapter.PaymentGateway
	payments repository.PaymentRepository
	currency string
	log      *zerolog.Logger
}

func NewCheckoutUseCase(gateway adapter.PaymentGateway, payments repository.PaymentRepository, currency string, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{gateway: gateway, payments: payments, currency: currency, log: logger}
}

// MinorUnits converts an amount in major units to the smallest currency unit,
// rounding to the nearest integer. Gateways operate on integers to avoid
// floating-point rounding errors.
func MinorUnits(amountMajor float64) int64 {
	return int64(math.Round(amountMajor * 100))
}

// newReceipt builds a display receipt from the current time plus randomness.
// Uniqueness is best-effort; the receipt is not a dedup key.
func newReceipt() string {
	return "rcpt_" + ulid.Make().String()
}

func (u *checkoutUC) CreateOrder(ctx context.Context, amountMajor float64) (*model.Order, string, error) {
	if amountMajor <= 0 {
		return nil, "", fmt.Errorf("amount must be positive: %w", domain.ErrInvalidArgument)
	}

	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "create order")()

	created, err := u.gateway.CreateOrder(ctx, MinorUnits(amountMajor), u.currency, newReceipt())
	if err != nil {
		metrics.IncOrderCreated("error")
		// Upstream detail stays in the server log, not the response.
		log.Error().Err(err).Str("gateway", u.gateway.Name()).Msg("order creation failed")
		return nil, "", fmt.Errorf("order creation: %w", domain.ErrUpstreamFailure)
	}
	metrics.IncOrderCreated("ok")

	order := &model.Order{
		ID:        created.OrderID,
		Amount:    created.Amount,
		Currency:  created.Currency,
		Receipt:   created.Receipt,
		Status:    model.OrderStatusCreated,
		CreatedAt: time.Now().UTC(),
	}
	// Best effort: the gateway owns the canonical order record, so a
	// failed local write must not fail the checkout.
	if err := u.payments.SaveOrder(ctx, order); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("order record not saved")
	}
	return order, u.gateway.KeyID(), nil
}

func (u *checkoutUC) VerifyPayment(ctx context.Context, in VerifyInput) (*VerifyResult, error) {
	started := time.Now()
	if in.OrderID == "" {
		metrics.IncVerify("fail", "missing_field")
		return nil, fmt.Errorf("orderId is required: %w", domain.ErrInvalidArgument)
	}
	if in.PaymentID == "" {
		metrics.IncVerify("fail", "missing_field")
		return nil, fmt.Errorf("paymentId is required: %w", domain.ErrInvalidArgument)
	}
	if in.Signature == "" {
		metrics.IncVerify("fail", "missing_field")
		return nil, fmt.Errorf("signature is required: %w", domain.ErrInvalidArgument)
	}

	ctx = logging.WithPaymentID(logging.WithOrderID(ctx, in.OrderID), in.PaymentID)
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "verify payment")()

	if !u.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		metrics.IncVerify("fail", "signature_mismatch")
		metrics.IncPayment(string(model.PaymentStatusFailed))
		metrics.ObserveVerifyDuration("fail", time.Since(started).Seconds())
		log.Warn().Msg("signature mismatch")
		return &VerifyResult{Verified: false}, nil
	}

	currency := in.Currency
	if currency == "" {
		currency = u.currency
	}
	p := &model.Payment{
		ID:         uuid.NewString(),
		OrderID:    in.OrderID,
		PaymentID:  in.PaymentID,
		Signature:  in.Signature,
		Amount:     in.Amount,
		Currency:   currency,
		Status:     model.PaymentStatusSuccess,
		Method:     in.Method,
		Email:      in.Email,
		Contact:    in.Contact,
		VerifiedAt: time.Now().UTC(),
	}
	if err := u.payments.SavePayment(ctx, p); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Replayed callback: keep the original record so VerifiedAt
			// stays stable across re-verifications.
			if prev, findErr := u.payments.FindPaymentByOrderID(ctx, in.OrderID); findErr == nil {
				p = prev
			}
		} else {
			log.Warn().Err(err).Msg("payment record not saved")
		}
	}
	metrics.IncVerify("ok", "")
	metrics.IncPayment(string(model.PaymentStatusSuccess))
	metrics.AddPaymentRevenue(currency, in.Amount)
	metrics.ObserveVerifyDuration("ok", time.Since(started).Seconds())
	return &VerifyResult{Verified: true, Payment: p}, nil
}
