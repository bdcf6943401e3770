//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/usecase"
)

func TestStatsUseCase(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	seed := func(repo *MockPaymentRepo) {
		for _, p := range []*model.Payment{
			{ID: "p1", OrderID: "o1", Amount: 750000, Status: model.PaymentStatusSuccess},
			{ID: "p2", OrderID: "o2", Amount: 250000, Status: model.PaymentStatusSuccess},
			{ID: "p3", OrderID: "o3", Amount: 100000, Status: model.PaymentStatusFailed},
		} {
			if err := repo.SavePayment(ctx, p); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
	}

	t.Run("should count payments by status", func(t *testing.T) {
		repo := NewMockPaymentRepo()
		seed(repo)
		uc := usecase.NewStatsUseCase(repo, testLogger)

		totals, err := uc.Totals(ctx)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if totals[string(model.PaymentStatusSuccess)] != 2 {
			t.Errorf("expected 2 successful payments, got %d", totals[string(model.PaymentStatusSuccess)])
		}
		if totals[string(model.PaymentStatusFailed)] != 1 {
			t.Errorf("expected 1 failed payment, got %d", totals[string(model.PaymentStatusFailed)])
		}
	})

	t.Run("should sum only verified payments", func(t *testing.T) {
		repo := NewMockPaymentRepo()
		seed(repo)
		uc := usecase.NewStatsUseCase(repo, testLogger)

		week, month, year, err := uc.Revenue(ctx)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		for name, got := range map[string]int64{"week": week, "month": month, "year": year} {
			if got != 1000000 {
				t.Errorf("%s revenue: expected 1000000, got %d", name, got)
			}
		}
	})

	t.Run("should propagate repository errors", func(t *testing.T) {
		repo := NewMockPaymentRepo()
		repo.SumByPeriodFunc = func(ctx context.Context, period string) (int64, error) {
			return 0, errors.New("db down")
		}
		uc := usecase.NewStatsUseCase(repo, testLogger)

		if _, _, _, err := uc.Revenue(ctx); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("should apply paging defaults", func(t *testing.T) {
		repo := NewMockPaymentRepo()
		seed(repo)
		uc := usecase.NewStatsUseCase(repo, testLogger)

		page, err := uc.ListPayments(ctx, -5, 0)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if len(page) != 3 {
			t.Errorf("expected all 3 payments with defaults, got %d", len(page))
		}
	})
}
