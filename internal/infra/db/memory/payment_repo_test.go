//go:build !integration

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
)

func TestPaymentRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("should mark the order paid on a successful payment", func(t *testing.T) {
		repo := NewPaymentRepo()
		order := &model.Order{ID: "order_abc", Amount: 750000, Status: model.OrderStatusCreated}
		if err := repo.SaveOrder(ctx, order); err != nil {
			t.Fatalf("save order: %v", err)
		}

		p := &model.Payment{
			ID: "p1", OrderID: "order_abc", PaymentID: "pay_xyz",
			Amount: 750000, Status: model.PaymentStatusSuccess, VerifiedAt: time.Now().UTC(),
		}
		if err := repo.SavePayment(ctx, p); err != nil {
			t.Fatalf("save payment: %v", err)
		}

		got, err := repo.FindPaymentByOrderID(ctx, "order_abc")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.PaymentID != "pay_xyz" {
			t.Errorf("expected pay_xyz, got %q", got.PaymentID)
		}
	})

	t.Run("should reject a duplicate payment id", func(t *testing.T) {
		repo := NewPaymentRepo()
		p := &model.Payment{ID: "p1", OrderID: "o1", PaymentID: "pay_xyz", Status: model.PaymentStatusSuccess}
		if err := repo.SavePayment(ctx, p); err != nil {
			t.Fatalf("first save: %v", err)
		}
		if err := repo.SavePayment(ctx, p); !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got: %v", err)
		}
	})

	t.Run("should return stored copies, not aliases", func(t *testing.T) {
		repo := NewPaymentRepo()
		p := &model.Payment{ID: "p1", OrderID: "o1", PaymentID: "pay_1", Status: model.PaymentStatusSuccess}
		_ = repo.SavePayment(ctx, p)
		p.Amount = 999

		got, err := repo.FindPaymentByOrderID(ctx, "o1")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.Amount != 0 {
			t.Errorf("caller mutation leaked into the store: %d", got.Amount)
		}
	})

	t.Run("should list newest first with paging", func(t *testing.T) {
		repo := NewPaymentRepo()
		base := time.Now().UTC()
		for i, id := range []string{"pay_1", "pay_2", "pay_3"} {
			_ = repo.SavePayment(ctx, &model.Payment{
				ID: id, OrderID: "o_" + id, PaymentID: id,
				Status: model.PaymentStatusSuccess, VerifiedAt: base.Add(time.Duration(i) * time.Minute),
			})
		}

		page, err := repo.ListPayments(ctx, 0, 2)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(page) != 2 || page[0].PaymentID != "pay_3" || page[1].PaymentID != "pay_2" {
			t.Fatalf("expected [pay_3 pay_2], got %v", page)
		}

		rest, err := repo.ListPayments(ctx, 2, 2)
		if err != nil {
			t.Fatalf("list rest: %v", err)
		}
		if len(rest) != 1 || rest[0].PaymentID != "pay_1" {
			t.Fatalf("expected [pay_1], got %v", rest)
		}
	})

	t.Run("should sum only successful payments inside the period", func(t *testing.T) {
		repo := NewPaymentRepo()
		now := time.Now().UTC()
		_ = repo.SavePayment(ctx, &model.Payment{ID: "a", OrderID: "oa", PaymentID: "pay_a",
			Amount: 100, Status: model.PaymentStatusSuccess, VerifiedAt: now})
		_ = repo.SavePayment(ctx, &model.Payment{ID: "b", OrderID: "ob", PaymentID: "pay_b",
			Amount: 200, Status: model.PaymentStatusSuccess, VerifiedAt: now.AddDate(-2, 0, 0)})
		_ = repo.SavePayment(ctx, &model.Payment{ID: "c", OrderID: "oc", PaymentID: "pay_c",
			Amount: 400, Status: model.PaymentStatusFailed, VerifiedAt: now})

		for _, period := range []string{"day", "week", "month", "year"} {
			sum, err := repo.SumByPeriod(ctx, period)
			if err != nil {
				t.Fatalf("sum %s: %v", period, err)
			}
			if sum != 100 {
				t.Errorf("expected 100 for %s, got %d", period, sum)
			}
		}
		if _, err := repo.SumByPeriod(ctx, "fortnight"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for an unknown period, got %v", err)
		}
	})
}

func TestPeriodStart(t *testing.T) {
	// Wednesday, mid-month.
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

	testCases := []struct {
		period string
		want   time.Time
	}{
		{period: "day", want: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)},
		{period: "week", want: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)}, // Monday
		{period: "month", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{period: "year", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.period, func(t *testing.T) {
			got, ok := periodStart(now, tc.period)
			if !ok {
				t.Fatalf("periodStart rejected %q", tc.period)
			}
			if !got.Equal(tc.want) {
				t.Errorf("periodStart(%q) = %v, want %v", tc.period, got, tc.want)
			}
		})
	}

	t.Run("sunday belongs to the week started the previous monday", func(t *testing.T) {
		sunday := time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC)
		got, ok := periodStart(sunday, "week")
		if !ok {
			t.Fatal("periodStart rejected week")
		}
		if want := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
			t.Errorf("week start = %v, want %v", got, want)
		}
	})

	t.Run("unknown period is rejected", func(t *testing.T) {
		if _, ok := periodStart(now, "quarter"); ok {
			t.Error("expected quarter to be rejected")
		}
	})
}
