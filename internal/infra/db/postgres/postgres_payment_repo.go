package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

// uniqueViolation per Postgres error class 23.
const uniqueViolation = "23505"

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

func (r *paymentRepo) SaveOrder(ctx context.Context, o *model.Order) error {
	const q = `
INSERT INTO orders (id, amount, currency, receipt, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET status=$5;`

	_, err := r.pool.Exec(ctx, q, o.ID, o.Amount, o.Currency, o.Receipt, o.Status, o.CreatedAt)
	if err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) SavePayment(ctx context.Context, p *model.Payment) error {
	const q = `
INSERT INTO payments (id, order_id, payment_id, signature, amount, currency, status, method, email, contact, verified_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11);`

	_, err := r.pool.Exec(ctx, q, p.ID, p.OrderID, p.PaymentID, p.Signature, p.Amount, p.Currency, p.Status, p.Method, p.Email, p.Contact, p.VerifiedAt)
	if err != nil {
		// Re-verifying the same order/payment pair is idempotent; a second
		// row for the same gateway payment id is not an error worth failing
		// the verification over.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyExists
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) SaveRefundRequest(ctx context.Context, req *model.RefundRequest) error {
	const q = `
INSERT INTO refund_requests (id, payment_id, reason, email, created_at)
VALUES ($1,$2,$3,$4,$5);`

	_, err := r.pool.Exec(ctx, q, req.ID, req.PaymentID, req.Reason, req.Email, req.CreatedAt)
	if err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) FindPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	const q = `
SELECT id, order_id, payment_id, signature, amount, currency, status, method, email, contact, verified_at
FROM payments WHERE order_id=$1 LIMIT 1;`

	p := &model.Payment{}
	err := r.pool.QueryRow(ctx, q, orderID).Scan(
		&p.ID, &p.OrderID, &p.PaymentID, &p.Signature, &p.Amount, &p.Currency,
		&p.Status, &p.Method, &p.Email, &p.Contact, &p.VerifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *paymentRepo) ListPayments(ctx context.Context, offset, limit int) ([]*model.Payment, error) {
	const q = `
SELECT id, order_id, payment_id, signature, amount, currency, status, method, email, contact, verified_at
FROM payments ORDER BY verified_at DESC OFFSET $1 LIMIT $2;`

	rows, err := r.pool.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Payment
	for rows.Next() {
		p := &model.Payment{}
		if err := rows.Scan(
			&p.ID, &p.OrderID, &p.PaymentID, &p.Signature, &p.Amount, &p.Currency,
			&p.Status, &p.Method, &p.Email, &p.Contact, &p.VerifiedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *paymentRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	const q = `SELECT status, COUNT(*) FROM payments GROUP BY status;`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[status] = n
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *paymentRepo) SumByPeriod(ctx context.Context, period string) (int64, error) {
	switch period {
	case "day", "week", "month", "year":
	default:
		return 0, domain.ErrInvalidArgument
	}
	const q = `SELECT COALESCE(SUM(amount),0) FROM payments WHERE status='success' AND verified_at >= DATE_TRUNC($1, NOW());`

	var sum int64
	if err := r.pool.QueryRow(ctx, q, period).Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}
