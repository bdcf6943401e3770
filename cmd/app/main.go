// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-mock-interview/internal/config"
	"ai-mock-interview/internal/domain/ports/adapter"
	"ai-mock-interview/internal/domain/ports/repository"
	aiAdapters "ai-mock-interview/internal/infra/adapters/ai"
	mailAdapters "ai-mock-interview/internal/infra/adapters/mail"
	payAdapters "ai-mock-interview/internal/infra/adapters/payment"
	"ai-mock-interview/internal/infra/db/memory"
	pg "ai-mock-interview/internal/infra/db/postgres"
	"ai-mock-interview/internal/infra/logging"
	"ai-mock-interview/internal/infra/metrics"
	red "ai-mock-interview/internal/infra/redis"
	"ai-mock-interview/internal/infra/web"
	"ai-mock-interview/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop providers allowed)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	// ---- Payment records ----
	var payRepo repository.PaymentRepository
	if cfg.Database.URL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		payRepo = pg.NewPaymentRepo(pool)
	} else {
		logger.Warn().Msg("database.url not set; payment records are in-memory only")
		payRepo = memory.NewPaymentRepo()
	}

	// ---- Redis (optional, rate limiting only) ----
	var limiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; rate limiting disabled")
	}

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Payment.Razorpay.KeyID != "" {
		gateway, err = payAdapters.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
		if err != nil {
			log.Fatalf("razorpay gateway: %v", err)
		}
	} else if cfg.Runtime.Dev {
		logger.Warn().Msg("no gateway keys; using noop payment gateway")
		gateway = payAdapters.NewNoopPaymentGateway()
	} else {
		log.Fatalf("payment.razorpay.key_id is required outside dev mode")
	}

	// ---- Mailer ----
	var mailer adapter.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mailAdapters.NewSMTPMailer(cfg.SMTP)
	} else {
		// Refund relays will report "not configured" per request unless
		// dev mode swaps in the in-memory mailer.
		if cfg.Runtime.Dev {
			logger.Warn().Msg("no smtp host; using noop mailer")
			mailer = mailAdapters.NewNoopMailer()
		} else {
			mailer = mailAdapters.NewSMTPMailer(cfg.SMTP)
		}
	}

	// ---- AI adapter (Gemini -> OpenAI -> noop in dev) ----
	var ai adapter.AIServiceAdapter
	if cfg.AI.GeminiKey != "" {
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel, 2048)
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: Gemini")
	} else if cfg.AI.OpenAIKey != "" {
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: OpenAI")
	} else if cfg.Runtime.Dev {
		logger.Warn().Msg("no AI provider configured; using noop adapter")
		ai = aiAdapters.NewNoopAIAdapter()
	} else {
		log.Fatalf("no AI provider configured: set ai.gemini_key or ai.openai_key in %s", *cfgPath)
	}

	// ---- Use cases ----
	checkoutUC := usecase.NewCheckoutUseCase(gateway, payRepo, cfg.Payment.Razorpay.Currency, logger)
	refundUC := usecase.NewRefundUseCase(mailer, payRepo, cfg.SMTP.AdminEmail, cfg.Runtime.Dev, logger)
	interviewUC := usecase.NewInterviewUseCase(ai, cfg.AI.DefaultModel, logger)
	statsUC := usecase.NewStatsUseCase(payRepo, logger)

	// ---- HTTP server ----
	metrics.MustRegister()
	var auth *web.AuthManager
	if cfg.Admin.JWTSecret != "" {
		auth = web.NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, "", cfg.Admin.SessionTTL)
	} else if cfg.Admin.APIKey != "" {
		logger.Warn().Msg("admin.jwt_secret not set; admin sessions disabled, API key only")
	}
	srv := web.NewServer(checkoutUC, refundUC, interviewUC, statsUC,
		cfg.Admin.APIKey, auth, limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	cancel()
}
