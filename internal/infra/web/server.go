package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ai-mock-interview/internal/infra/logging"
	"ai-mock-interview/internal/infra/redis"
	"ai-mock-interview/internal/usecase"
)

// Server wires the checkout, interview and admin routes.
type Server struct {
	checkoutUC  usecase.CheckoutUseCase
	refundUC    usecase.RefundUseCase
	interviewUC usecase.InterviewUseCase
	statsUC     usecase.StatsUseCase

	apiKey  string
	auth    *AuthManager
	limiter *redis.RateLimiter // nil disables rate limiting

	rlRequests int
	rlWindow   time.Duration

	log *zerolog.Logger
}

func NewServer(
	checkoutUC usecase.CheckoutUseCase,
	refundUC usecase.RefundUseCase,
	interviewUC usecase.InterviewUseCase,
	statsUC usecase.StatsUseCase,
	apiKey string,
	auth *AuthManager,
	limiter *redis.RateLimiter,
	rlRequests int,
	rlWindow time.Duration,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		checkoutUC:  checkoutUC,
		refundUC:    refundUC,
		interviewUC: interviewUC,
		statsUC:     statsUC,
		apiKey:      apiKey,
		auth:        auth,
		limiter:     limiter,
		rlRequests:  rlRequests,
		rlWindow:    rlWindow,
		log:         logger,
	}
}

// Router builds the chi mux for the whole API surface.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public checkout + interview surface, rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/checkout/order", s.handleCreateOrder)
			r.Post("/checkout/verify", s.handleVerifyPayment)
			r.Post("/checkout/refund-request", s.handleRefundRequest)
			r.Post("/interview/questions", s.handleGenerateQuestions)
			r.Post("/interview/review", s.handleReviewAnswer)
		})

		r.Post("/admin/login", s.handleAdminLogin)
		r.Post("/admin/logout", s.handleAdminLogout)
		r.Group(func(r chi.Router) {
			r.Use(s.adminAuth)
			r.Get("/admin/payments", s.handleAdminPayments)
			r.Get("/admin/stats", s.handleAdminStats)
		})
	})
	return r
}

// requestLogger stamps the request id into the context for downstream
// loggers and emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithRequestID(r.Context(), chimw.GetReqID(r.Context()))
		log := logging.With(ctx, s.log)
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// rateLimit rejects callers that exceed the per-IP window. Fails open on
// Redis errors: checkout must not depend on the limiter's availability.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := redis.ClientRouteKey(clientIP(r), r.URL.Path)
		ok, err := s.limiter.Allow(r.Context(), key, s.rlRequests, s.rlWindow)
		if err != nil {
			s.log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminAuth accepts either a minted admin JWT or the raw API key as Bearer.
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if hdr := r.Header.Get("Authorization"); hdr != "" {
			parts := strings.SplitN(hdr, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] == s.apiKey {
				next.ServeHTTP(w, r)
				return
			}
		}
		if s.auth != nil {
			if _, err := s.auth.ParseFromRequest(r); err == nil {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}

func clientIP(r *http.Request) string {
	// RealIP middleware already rewrote RemoteAddr when forwarded headers
	// were present.
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
