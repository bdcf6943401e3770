//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/ports/adapter"
	"ai-mock-interview/internal/usecase"
)

func TestRefundUseCase_Request(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("should relay a refund request to the administrator", func(t *testing.T) {
		// --- Arrange ---
		mailer := &MockMailer{}
		repo := NewMockPaymentRepo()
		uc := usecase.NewRefundUseCase(mailer, repo, "admin@example.com", false, testLogger)

		// --- Act ---
		err := uc.Request(ctx, "pay_xyz", "double charge", "candidate@example.com")

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if mailer.SentCount() != 1 {
			t.Fatalf("expected exactly one mail, got %d", mailer.SentCount())
		}
		m := mailer.Sent[0]
		if m.To != "admin@example.com" {
			t.Errorf("expected mail to the admin address, got %q", m.To)
		}
		if m.ReplyTo != "candidate@example.com" {
			t.Errorf("expected reply-to set to the requester, got %q", m.ReplyTo)
		}
		if !strings.Contains(m.Subject, "pay_xyz") {
			t.Errorf("expected the payment id in the subject, got %q", m.Subject)
		}
		if !strings.Contains(m.Body, "double charge") {
			t.Errorf("expected the reason in the body, got %q", m.Body)
		}
		if got := repo.Refunds(); len(got) != 1 || got[0].PaymentID != "pay_xyz" {
			t.Errorf("expected one refund record for pay_xyz, got %v", got)
		}
	})

	t.Run("should reject an empty reason without sending", func(t *testing.T) {
		// --- Arrange ---
		mailer := &MockMailer{}
		uc := usecase.NewRefundUseCase(mailer, NewMockPaymentRepo(), "admin@example.com", false, testLogger)

		// --- Act ---
		err := uc.Request(ctx, "pay_xyz", "   ", "candidate@example.com")

		// --- Assert ---
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got: %v", err)
		}
		if mailer.SentCount() != 0 {
			t.Errorf("no mail must be sent for a rejected request, got %d", mailer.SentCount())
		}
	})

	t.Run("should reject a missing payment id", func(t *testing.T) {
		mailer := &MockMailer{}
		uc := usecase.NewRefundUseCase(mailer, NewMockPaymentRepo(), "admin@example.com", false, testLogger)

		if err := uc.Request(ctx, "", "reason", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got: %v", err)
		}
		if mailer.SentCount() != 0 {
			t.Errorf("no mail must be sent, got %d", mailer.SentCount())
		}
	})

	t.Run("should report a missing admin address as not configured", func(t *testing.T) {
		// --- Arrange ---
		sendCalled := false
		mailer := &MockMailer{SendFunc: func(ctx context.Context, m adapter.Mail) error {
			sendCalled = true
			return nil
		}}
		uc := usecase.NewRefundUseCase(mailer, NewMockPaymentRepo(), "", false, testLogger)

		// --- Act ---
		err := uc.Request(ctx, "pay_xyz", "reason", "candidate@example.com")

		// --- Assert ---
		if !errors.Is(err, domain.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got: %v", err)
		}
		if sendCalled {
			t.Error("mailer must not be called without an admin address")
		}
	})

	t.Run("should surface a transport misconfiguration per request", func(t *testing.T) {
		// --- Arrange ---
		mailer := &MockMailer{SendFunc: func(ctx context.Context, m adapter.Mail) error {
			return domain.ErrNotConfigured
		}}
		uc := usecase.NewRefundUseCase(mailer, NewMockPaymentRepo(), "admin@example.com", false, testLogger)

		// --- Act ---
		err := uc.Request(ctx, "pay_xyz", "reason", "")

		// --- Assert ---
		if !errors.Is(err, domain.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got: %v", err)
		}
	})

	t.Run("should wrap SMTP failures as upstream failures", func(t *testing.T) {
		// --- Arrange ---
		mailer := &MockMailer{SendFunc: func(ctx context.Context, m adapter.Mail) error {
			return errors.New("dial tcp: connection refused")
		}}
		repo := NewMockPaymentRepo()
		uc := usecase.NewRefundUseCase(mailer, repo, "admin@example.com", false, testLogger)

		// --- Act ---
		err := uc.Request(ctx, "pay_xyz", "reason", "")

		// --- Assert ---
		if !errors.Is(err, domain.ErrUpstreamFailure) {
			t.Fatalf("expected ErrUpstreamFailure, got: %v", err)
		}
		if len(repo.Refunds()) != 0 {
			t.Error("no refund record when the relay failed")
		}
	})
}
