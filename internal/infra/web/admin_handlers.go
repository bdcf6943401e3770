package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
)

// POST /api/v1/admin/login — exchanges the API key for a session cookie.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"apiKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if s.apiKey == "" || s.auth == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "admin access not configured"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(s.apiKey)) != 1 {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to mint session"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// POST /api/v1/admin/logout
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if s.auth != nil {
		s.auth.Clear(w)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/v1/admin/payments?offset=&limit=
func (s *Server) handleAdminPayments(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50 // Default page size
	}
	if offset < 0 {
		offset = 0
	}

	payments, err := s.statsUC.ListPayments(r.Context(), offset, limit)
	if err != nil {
		http.Error(w, "Failed to list payments", http.StatusInternalServerError)
		return
	}

	data := make([]*paymentJSON, 0, len(payments))
	for _, p := range payments {
		data = append(data, toPaymentJSON(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []*paymentJSON `json:"data"`
		Limit  int            `json:"limit"`
		Offset int            `json:"offset"`
	}{Data: data, Limit: limit, Offset: offset})
}

// GET /api/v1/admin/stats
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totals, err := s.statsUC.Totals(ctx)
	if err != nil {
		http.Error(w, "Failed to get totals", http.StatusInternalServerError)
		return
	}
	week, month, year, err := s.statsUC.Revenue(ctx)
	if err != nil {
		http.Error(w, "Failed to get revenue", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		PaymentsByStatus map[string]int `json:"payments_by_status"`
		Revenue          struct {
			Week  int64 `json:"week"`
			Month int64 `json:"month"`
			Year  int64 `json:"year"`
		} `json:"revenue_minor_units"`
	}{
		PaymentsByStatus: totals,
		Revenue: struct {
			Week  int64 `json:"week"`
			Month int64 `json:"month"`
			Year  int64 `json:"year"`
		}{Week: week, Month: month, Year: year},
	})
}
