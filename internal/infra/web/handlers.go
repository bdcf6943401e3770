package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ai-mock-interview/internal/domain"
	"ai-mock-interview/internal/domain/model"
	"ai-mock-interview/internal/usecase"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// paymentJSON is the client-facing shape of a verified payment.
type paymentJSON struct {
	OrderID    string    `json:"orderId"`
	PaymentID  string    `json:"paymentId"`
	Signature  string    `json:"signature"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	Method     string    `json:"method,omitempty"`
	Email      string    `json:"email,omitempty"`
	Contact    string    `json:"contact,omitempty"`
	VerifiedAt time.Time `json:"timestamp"`
}

func toPaymentJSON(p *model.Payment) *paymentJSON {
	return &paymentJSON{
		OrderID:    p.OrderID,
		PaymentID:  p.PaymentID,
		Signature:  p.Signature,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		Method:     p.Method,
		Email:      p.Email,
		Contact:    p.Contact,
		VerifiedAt: p.VerifiedAt,
	}
}

// POST /api/v1/checkout/order
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"` // major currency units
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, keyID, err := s.checkoutUC.CreateOrder(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to create order"})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		OrderID  string `json:"orderId"`
		Amount   int64  `json:"amount"` // minor units
		Currency string `json:"currency"`
		KeyID    string `json:"keyId"`
	}{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    keyID,
	})
}

// POST /api/v1/checkout/verify
func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
		Amount    int64  `json:"amount,omitempty"`
		Currency  string `json:"currency,omitempty"`
		Email     string `json:"email,omitempty"`
		Contact   string `json:"contact,omitempty"`
		Method    string `json:"method,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"verified": false, "error": "invalid request body"})
		return
	}

	res, err := s.checkoutUC.VerifyPayment(r.Context(), usecase.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Email:     req.Email,
		Contact:   req.Contact,
		Method:    req.Method,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"verified": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"verified": false, "error": "verification unavailable"})
		return
	}
	if !res.Verified {
		// Deliberately generic: no detail that would aid forgery.
		writeJSON(w, http.StatusOK, map[string]any{"verified": false, "error": "payment verification failed"})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Verified bool         `json:"verified"`
		Payment  *paymentJSON `json:"payment"`
	}{Verified: true, Payment: toPaymentJSON(res.Payment)})
}

// POST /api/v1/checkout/refund-request
func (s *Server) handleRefundRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentID string `json:"paymentId"`
		Reason    string `json:"reason"`
		Email     string `json:"email,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, refundResponse{Success: false, Message: "invalid request body"})
		return
	}

	err := s.refundUC.Request(r.Context(), req.PaymentID, req.Reason, req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, refundResponse{
			Success: true,
			Message: "refund request received; our team will process it shortly",
		})
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, refundResponse{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, refundResponse{Success: false, Message: "mail service not configured"})
	default:
		writeJSON(w, http.StatusBadGateway, refundResponse{Success: false, Message: "failed to send refund notification"})
	}
}

type refundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// POST /api/v1/interview/questions
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role      string `json:"role"`
		Seniority string `json:"seniority"`
		TechStack string `json:"techStack"`
		Questions int    `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	questions, err := s.interviewUC.GenerateQuestions(r.Context(), model.InterviewSpec{
		Role:      req.Role,
		Seniority: req.Seniority,
		TechStack: req.TechStack,
		Questions: req.Questions,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "question generation failed"})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []model.Question `json:"data"`
	}{Data: questions})
}

// POST /api/v1/interview/review
func (s *Server) handleReviewAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	review, err := s.interviewUC.ReviewAnswer(r.Context(), req.Question, req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "answer review failed"})
		return
	}
	writeJSON(w, http.StatusOK, review)
}
