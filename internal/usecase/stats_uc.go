// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	// Totals returns payment counts by status.
	Totals(ctx context.Context) (map[string]int, error)
	// Revenue returns verified minor-unit sums for week, month, year.
	Revenue(ctx context.Context) (week, month, year int64, err error)
	// ListPayments pages through recorded payments, newest first.
	ListPayments(ctx context.Context, offset, limit int) ([]*model.Payment, error)
}

type statsUC struct {
	payments repository.PaymentRepository
	log      *zerolog.Logger
}

func NewStatsUseCase(payments repository.PaymentRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{payments: payments, log: logger}
}

func (s *statsUC) Totals(ctx context.Context) (map[string]int, error) {
	return s.payments.CountByStatus(ctx)
}

func (s *statsUC) Revenue(ctx context.Context) (int64, int64, int64, error) {
	week, err := s.payments.SumByPeriod(ctx, "week")
	if err != nil {
		return 0, 0, 0, err
	}
	month, err := s.payments.SumByPeriod(ctx, "month")
	if err != nil {
		return 0, 0, 0, err
	}
	year, err := s.payments.SumByPeriod(ctx, "year")
	if err != nil {
		return 0, 0, 0, err
	}
	return week, month, year, nil
}

func (s *statsUC) ListPayments(ctx context.Context, offset, limit int) ([]*model.Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.payments.ListPayments(ctx, offset, limit)
}
