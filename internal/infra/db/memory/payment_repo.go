// Package memory backs the checkout trail when no database is configured.
// The original deployment kept no durable records at all; this store keeps
// the admin surface working without making Postgres a hard dependency.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

type PaymentRepo struct {
	mu       sync.RWMutex
	orders   map[string]*model.Order
	payments map[string]*model.Payment // keyed by gateway payment id
	refunds  []*model.RefundRequest
}

func NewPaymentRepo() *PaymentRepo {
	return &PaymentRepo{
		orders:   make(map[string]*model.Order),
		payments: make(map[string]*model.Payment),
	}
}

func (r *PaymentRepo) SaveOrder(ctx context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *PaymentRepo) SavePayment(ctx context.Context, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.PaymentID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *p
	r.payments[p.PaymentID] = &cp
	if o, ok := r.orders[p.OrderID]; ok && p.Status == model.PaymentStatusSuccess {
		o.Status = model.OrderStatusPaid
	}
	return nil
}

func (r *PaymentRepo) SaveRefundRequest(ctx context.Context, req *model.RefundRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.refunds = append(r.refunds, &cp)
	return nil
}

func (r *PaymentRepo) FindPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.OrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *PaymentRepo) ListPayments(ctx context.Context, offset, limit int) ([]*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].VerifiedAt.After(all[j].VerifiedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *PaymentRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int)
	for _, p := range r.payments {
		out[string(p.Status)]++
	}
	return out, nil
}

// periodStart returns the start of the calendar period containing now,
// matching Postgres DATE_TRUNC (weeks start on Monday).
func periodStart(now time.Time, period string) (time.Time, bool) {
	switch period {
	case "day":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		days := (int(now.Weekday()) + 6) % 7
		return time.Date(now.Year(), now.Month(), now.Day()-days, 0, 0, 0, 0, now.Location()), true
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

func (r *PaymentRepo) SumByPeriod(ctx context.Context, period string) (int64, error) {
	since, ok := periodStart(time.Now().UTC(), period)
	if !ok {
		return 0, domain.ErrInvalidArgument
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, p := range r.payments {
		if p.Status == model.PaymentStatusSuccess && !p.VerifiedAt.Before(since) {
			sum += p.Amount
		}
	}
	return sum, nil
}

// RefundRequests returns a copy of the relayed refund requests (test helper).
func (r *PaymentRepo) RefundRequests() []*model.RefundRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.RefundRequest, len(r.refunds))
	copy(out, r.refunds)
	return out
}
