package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/fieldmap"
	"github.com/xavierca1/ligue-crm/internal/infra/cache"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/brevo"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/stream"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("❌ configuração inválida")
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("❌ falha ao conectar no banco")
	}
	defer db.Close()

	health := map[string]handlers.Pinger{"database": db}

	// 1. Repositórios
	contactRepo := database.NewContactRepository(db)
	consentRepo := database.NewConsentRepository(db)
	submissionRepo := database.NewFormSubmissionRepository(db)
	eventRepo := database.NewEventRepository(db)
	queueRepo := database.NewEmailQueueRepository(db)

	// 2. Barramento de eventos
	var (
		publisher usecase.EventPublisher
		rabbitMQ  *queue.RabbitMQ
	)
	switch cfg.EventBus {
	case "rabbitmq":
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.WithError(err).Fatal("❌ falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()
		publisher = queue.NewProducer(rabbitMQ.Ch)
		health["rabbitmq"] = rabbitMQ
	case "kafka":
		producer, err := stream.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.WithError(err).Fatal("❌ Kafka mal configurado")
		}
		defer producer.Close()
		publisher = producer
		health["kafka"] = producer
	}

	// 3. Provedores de email
	brevoClient := brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoURL)
	dispatcher := mail.NewDispatcher().
		Register(mail.ProviderBrevo, mail.NewBrevoSender(brevoClient)).
		Register(mail.ProviderSMTP, mail.NewSMTPSender()).
		Register(mail.ProviderSimulated, mail.NewSimulatedSender(cfg.SimulatedDelay))

	// 4. Rate limit: webhooks de plataforma têm cota própria, mais alta
	trackLimiter, webhookLimiter := newLimiters(cfg, health)

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.WithError(err).Fatal("❌ TRUSTED_PROXIES inválido")
	}

	// 5. UseCases
	contacts := usecase.NewContactResolver(contactRepo)
	eventLogger := usecase.NewEventLogger(eventRepo, publisher, cfg.EventBus)

	ingestLeadUC := usecase.NewIngestLeadUseCase(
		fieldmap.New(),
		contacts,
		usecase.NewConsentRecorder(consentRepo),
		submissionRepo,
		eventLogger,
	)
	recordEmailEventUC := usecase.NewRecordEmailEventUseCase(contacts, eventLogger)
	trackEventUC := usecase.NewTrackEventUseCase(eventLogger)
	sendEmailUC := usecase.NewSendEmailUseCase(dispatcher, cfg.Mail)
	processQueueUC := usecase.NewProcessEmailQueueUseCase(queueRepo, dispatcher, cfg.Mail, cfg.QueueBatchSize)
	brevoDiagnosticsUC := usecase.NewBrevoDiagnosticsUseCase(brevoClient)

	// 6. Workers
	go worker.NewEmailQueuePoller(processQueueUC, cfg.QueuePollInterval).Start(ctx)

	if rabbitMQ != nil {
		consumerCh, err := rabbitMQ.Conn.Channel()
		if err != nil {
			logger.WithError(err).Fatal("❌ falha ao abrir canal do consumidor")
		}
		go func() {
			if err := queue.NewDrainWorker(consumerCh, processQueueUC).Start(ctx); err != nil {
				logger.WithError(err).Error("❌ consumidor de drenagem parou")
			}
		}()
	}

	// 7. Handlers
	leadHandler := handlers.NewLeadWebhookHandler(ingestLeadUC, webhookLimiter, cfg.MetaVerifyToken, cfg.MaxRequestBody)
	emailWebhookHandler := handlers.NewEmailWebhookHandler(recordEmailEventUC, cfg.MaxRequestBody)
	emailHandler := handlers.NewEmailHandler(sendEmailUC, processQueueUC, cfg.MaxRequestBody)
	trackHandler := handlers.NewTrackHandler(trackEventUC, trackLimiter, cfg.MaxRequestBody)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(sendEmailUC, brevoDiagnosticsUC, cfg.MaxRequestBody)
	healthHandler := handlers.NewHealthHandler(health)

	if cfg.MetaAppSecret == "" {
		logger.Log.Warn("⚠️ META_APP_SECRET vazio: assinatura da Meta não será conferida")
	}
	if cfg.TikTokWebhookSecret == "" {
		logger.Log.Warn("⚠️ TIKTOK_WEBHOOK_SECRET vazio: assinatura do TikTok não será conferida")
	}
	if cfg.AuthJWTSecret == "" {
		logger.Log.Warn("⚠️ AUTH_JWT_SECRET vazio: /track vai recusar tudo")
	}

	metaSignature := middleware.VerifySignature(middleware.SignatureConfig{
		Platform: usecase.PlatformMeta,
		Header:   "X-Hub-Signature-256",
		Prefix:   "sha256=",
		Secret:   cfg.MetaAppSecret,
		MaxBody:  cfg.MaxRequestBody,
	})
	tiktokSignature := middleware.VerifySignature(middleware.SignatureConfig{
		Platform: usecase.PlatformTikTok,
		Header:   "X-Tiktok-Signature",
		Secret:   cfg.TikTokWebhookSecret,
		MaxBody:  cfg.MaxRequestBody,
	})

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.TrustedRealIP(trustedProxies))
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Hub-Signature-256", "X-Tiktok-Signature"},
	}))

	r.Post("/webhooks/email", emailWebhookHandler.Handle)
	r.Get("/webhooks/meta", leadHandler.VerifyMeta)
	r.With(metaSignature).Post("/webhooks/meta", leadHandler.HandleMeta)
	r.With(tiktokSignature).Post("/webhooks/tiktok", leadHandler.HandleTikTok)

	r.Post("/email/send", emailHandler.HandleSend)
	r.Post("/email/queue/process", emailHandler.HandleProcessQueue)

	r.With(middleware.BearerAuth(cfg.AuthJWTSecret)).Post("/track", trackHandler.Handle)

	r.Post("/diagnostics/smtp", diagnosticsHandler.HandleSMTPTest)
	r.Post("/diagnostics/brevo", diagnosticsHandler.HandleBrevoTest)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(map[string]interface{}{
			"port":           cfg.Port,
			"email_provider": cfg.Mail.Provider,
			"event_bus":      cfg.EventBus,
		}).Info("🔥 Server CRM rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("❌ servidor HTTP caiu")
		}
	}()

	<-ctx.Done()
	logger.Log.Info("⚠️ desligando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("❌ erro no shutdown")
	}
}

func newLimiters(cfg *config.Config, health map[string]handlers.Pinger) (track, webhook handlers.Limiter) {
	if cfg.RateLimitBackend == "redis" {
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			perUser := cache.NewRedisRateLimiter(client, cfg.RateLimitPerMinute, time.Minute)
			health["redis"] = perUser
			return perUser, cache.NewRedisRateLimiter(client, cfg.WebhookRateLimitPerMinute, time.Minute)
		}
		logger.WithError(err).Warn("⚠️ Redis indisponível, usando rate limit em memória")
		health["redis"] = handlers.PingerFunc(func(context.Context) error { return err })
	}
	return handlers.NewMemoryRateLimiter(cfg.RateLimitPerMinute, time.Minute),
		handlers.NewMemoryRateLimiter(cfg.WebhookRateLimitPerMinute, time.Minute)
}
