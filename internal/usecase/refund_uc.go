// File: internal/usecase/refund_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/adapter"
	"ai-mock-interview/internal/domain/ports/repository"
	"ai-mock-interview/internal/infra/logging"
	"ai-mock-interview/internal/infra/metrics"
)

// Compile-time check
var _ RefundUseCase = (*refundUC)(nil)

type RefundUseCase interface {
	// Request relays a refund request to the administrator by email. It
	// performs no refund itself; the administrator settles out-of-band.
	// Success means exactly "the send call returned no error".
	Request(ctx context.Context, paymentID, reason, email string) error
}

type refundUC struct {
	mailer     adapter.Mailer
	payments   repository.PaymentRepository
	adminEmail string
	dev        bool
	log        *zerolog.Logger
}

func NewRefundUseCase(mailer adapter.Mailer, payments repository.PaymentRepository, adminEmail string, dev bool, logger *zerolog.Logger) *refundUC {
	return &refundUC{mailer: mailer, payments: payments, adminEmail: adminEmail, dev: dev, log: logger}
}

func (u *refundUC) Request(ctx context.Context, paymentID, reason, email string) error {
	if paymentID == "" {
		metrics.IncRefundRelay("rejected")
		return fmt.Errorf("paymentId is required: %w", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(reason) == "" {
		metrics.IncRefundRelay("rejected")
		return fmt.Errorf("refund reason is required: %w", domain.ErrInvalidArgument)
	}
	// Configuration is checked per request, not at startup: a missing admin
	// address is an operator error, reported, never silently dropped.
	if u.adminEmail == "" {
		metrics.IncRefundRelay("not_configured")
		return fmt.Errorf("administrator address: %w", domain.ErrNotConfigured)
	}

	ctx = logging.WithPaymentID(ctx, paymentID)
	log := logging.With(ctx, u.log)

	now := time.Now().UTC()
	var b strings.Builder
	fmt.Fprintf(&b, "A refund has been requested.\n\n")
	fmt.Fprintf(&b, "Payment ID: %s\n", paymentID)
	fmt.Fprintf(&b, "Reason: %s\n", reason)
	if email != "" {
		fmt.Fprintf(&b, "Requester: %s\n", email)
	}
	fmt.Fprintf(&b, "Requested at: %s\n", now.Format(time.RFC3339))

	m := adapter.Mail{
		To:      u.adminEmail,
		ReplyTo: email,
		Subject: fmt.Sprintf("Refund request for payment %s", paymentID),
		Body:    b.String(),
	}
	if err := u.mailer.Send(ctx, m); err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			metrics.IncRefundRelay("not_configured")
			return fmt.Errorf("mail transport: %w", domain.ErrNotConfigured)
		}
		metrics.IncRefundRelay("error")
		log.Error().Err(err).Msg("refund notification failed")
		return fmt.Errorf("refund notification: %w", domain.ErrUpstreamFailure)
	}
	metrics.IncRefundRelay("sent")
	log.Info().Str("requester", logging.Redact(email, u.dev)).Msg("refund notification sent")

	// Best-effort audit trail; the notification already went out.
	rr := &model.RefundRequest{
		ID:        uuid.NewString(),
		PaymentID: paymentID,
		Reason:    reason,
		Email:     email,
		CreatedAt: now,
	}
	if err := u.payments.SaveRefundRequest(ctx, rr); err != nil {
		log.Warn().Err(err).Msg("refund request record not saved")
	}
	return nil
}
