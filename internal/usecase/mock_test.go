//go:build !integration

package usecase_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/domain/ports/adapter"
	"ai-mock-interview/internal/domain/ports/repository"
)

// =============================
// Adapters
// =============================

// ---- Mock PaymentGateway ----

type MockPaymentGateway struct {
	NameVal string
	Secret  string // key used by the default VerifySignature

	CreateOrderFunc     func(ctx context.Context, amountMinor int64, currency, receipt string) (adapter.CreatedOrder, error)
	VerifySignatureFunc func(orderID, paymentID, signature string) bool

	mu      sync.Mutex
	Created []adapter.CreatedOrder
}

var _ adapter.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) Name() string {
	if m.NameVal == "" {
		return "mockpay"
	}
	return m.NameVal
}

func (m *MockPaymentGateway) KeyID() string { return "rzp_test_mock" }

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (adapter.CreatedOrder, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountMinor, currency, receipt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	created := adapter.CreatedOrder{
		OrderID:  fmt.Sprintf("order_mock_%d", len(m.Created)+1),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}
	m.Created = append(m.Created, created)
	return created, nil
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(orderID, paymentID, signature)
	}
	return hmac.Equal([]byte(signature), []byte(m.Sign(orderID, paymentID)))
}

// Sign builds the signature the default VerifySignature accepts.
func (m *MockPaymentGateway) Sign(orderID, paymentID string) string {
	secret := m.Secret
	if secret == "" {
		secret = "mock-secret"
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ---- Mock Mailer ----

type MockMailer struct {
	mu   sync.Mutex
	Sent []adapter.Mail

	SendFunc func(ctx context.Context, m adapter.Mail) error
}

var _ adapter.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Name() string { return "mockmail" }

func (m *MockMailer) Send(ctx context.Context, mail adapter.Mail) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, mail)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, mail)
	return nil
}

func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// ---- Mock AIServiceAdapter ----

type MockAIAdapter struct {
	Reply string
	Use   adapter.Usage

	ChatWithUsageFunc func(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error)
}

var _ adapter.AIServiceAdapter = (*MockAIAdapter)(nil)

func (m *MockAIAdapter) Name() string { return "mock-ai" }

func (m *MockAIAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	text, _, err := m.ChatWithUsage(ctx, model, messages)
	return text, err
}

func (m *MockAIAdapter) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	if m.ChatWithUsageFunc != nil {
		return m.ChatWithUsageFunc(ctx, model, messages)
	}
	return m.Reply, m.Use, nil
}

// =============================
// Repositories
// =============================

// MockPaymentRepo is a thread-safe in-memory PaymentRepository with
// per-method overrides.
type MockPaymentRepo struct {
	mu      sync.Mutex
	orders  map[string]*model.Order
	byOrder map[string]*model.Payment
	list    []*model.Payment
	refunds []*model.RefundRequest

	SaveOrderFunc         func(ctx context.Context, o *model.Order) error
	SavePaymentFunc       func(ctx context.Context, p *model.Payment) error
	SaveRefundRequestFunc func(ctx context.Context, r *model.RefundRequest) error
	CountByStatusFunc     func(ctx context.Context) (map[string]int, error)
	SumByPeriodFunc       func(ctx context.Context, period string) (int64, error)
}

var _ repository.PaymentRepository = (*MockPaymentRepo)(nil)

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{
		orders:  make(map[string]*model.Order),
		byOrder: make(map[string]*model.Payment),
	}
}

func (m *MockPaymentRepo) SaveOrder(ctx context.Context, o *model.Order) error {
	if m.SaveOrderFunc != nil {
		return m.SaveOrderFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockPaymentRepo) SavePayment(ctx context.Context, p *model.Payment) error {
	if m.SavePaymentFunc != nil {
		return m.SavePaymentFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byOrder[p.OrderID]; ok {
		return domain.ErrAlreadyExists
	}
	m.byOrder[p.OrderID] = p
	m.list = append(m.list, p)
	return nil
}

func (m *MockPaymentRepo) SaveRefundRequest(ctx context.Context, r *model.RefundRequest) error {
	if m.SaveRefundRequestFunc != nil {
		return m.SaveRefundRequestFunc(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunds = append(m.refunds, r)
	return nil
}

func (m *MockPaymentRepo) FindPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byOrder[orderID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockPaymentRepo) ListPayments(ctx context.Context, offset, limit int) ([]*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.list) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.list) {
		end = len(m.list)
	}
	out := make([]*model.Payment, end-offset)
	copy(out, m.list[offset:end])
	return out, nil
}

func (m *MockPaymentRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int)
	for _, p := range m.list {
		out[string(p.Status)]++
	}
	return out, nil
}

func (m *MockPaymentRepo) SumByPeriod(ctx context.Context, period string) (int64, error) {
	if m.SumByPeriodFunc != nil {
		return m.SumByPeriodFunc(ctx, period)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, p := range m.list {
		if p.Status == model.PaymentStatusSuccess {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (m *MockPaymentRepo) Refunds() []*model.RefundRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.RefundRequest, len(m.refunds))
	copy(out, m.refunds)
	return out
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
