package repository

import (
	"context"

	"ai-mock-interview/internal/domain/model"
)

// PaymentRepository records the checkout trail: orders we asked the gateway
// to create, payments that passed signature verification, and refund
// requests that were relayed. The gateway keeps the canonical order record;
// this store exists for administration only.
type PaymentRepository interface {
	SaveOrder(ctx context.Context, o *model.Order) error
	SavePayment(ctx context.Context, p *model.Payment) error
	SaveRefundRequest(ctx context.Context, r *model.RefundRequest) error

	FindPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
	ListPayments(ctx context.Context, offset, limit int) ([]*model.Payment, error)

	// CountByStatus returns payment counts keyed by status.
	CountByStatus(ctx context.Context) (map[string]int, error)
	// SumByPeriod sums verified payment amounts since the start of the
	// given period ("day" | "week" | "month" | "year").
	SumByPeriod(ctx context.Context, period string) (int64, error)
}
