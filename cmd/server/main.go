package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/porikkha/porikkha-backend/internal/ai"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/database"
	"github.com/porikkha/porikkha-backend/internal/handler"
	"github.com/porikkha/porikkha-backend/internal/logger"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/porikkha/porikkha-backend/internal/router"
	"github.com/porikkha/porikkha-backend/internal/service"
	"github.com/porikkha/porikkha-backend/internal/validator"
	"github.com/porikkha/porikkha-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Porikkha Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── AI Gateway Client ─────────────────────────────────────────────
	aiClient, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI client")
	}
	defer aiClient.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	proctoringRepo := repository.NewProctoringRepository(pool)
	billingRepo := repository.NewBillingRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(profileRepo, notificationRepo, authService, log)
	adminService := service.NewAdminService(adminRepo, roleRepo)
	examService := service.NewExamService(examRepo, questionRepo, rdb, log)
	questionService := service.NewQuestionService(questionRepo, examService, log)
	attemptService := service.NewAttemptService(attemptRepo, log)
	proctoringService := service.NewProctoringService(proctoringRepo, attemptRepo, notificationRepo, rdb, log)
	analyticsService := service.NewAnalyticsService(attemptRepo, cfg.TrendDays)
	billingService := service.NewBillingService(billingRepo, log)
	adminUserService := service.NewAdminUserService(adminRepo, authService)
	adminRoleService := service.NewAdminRoleService(roleRepo)
	settingService := service.NewSettingService(settingRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo)
	aiGateway := ai.NewGateway(aiClient)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, studentService, adminService),
		Exam:         handler.NewExamHandler(examService),
		Question:     handler.NewQuestionHandler(questionService),
		Attempt:      handler.NewAttemptHandler(attemptService),
		Proctoring:   handler.NewProctoringHandler(proctoringService),
		Analytics:    handler.NewAnalyticsHandler(analyticsService),
		AI:           handler.NewAIHandler(aiGateway),
		Billing:      handler.NewBillingHandler(billingService),
		Notification: handler.NewNotificationHandler(studentService),
		StudentMgmt:  handler.NewStudentManagementHandler(studentService),
		AdminUser:    handler.NewAdminUserHandler(adminUserService),
		AdminRole:    handler.NewAdminRoleHandler(adminRoleService),
		Setting:      handler.NewSettingHandler(settingService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		WS:           handler.NewWSHandler(rdb, examService, log, cfg.AllowedOrigins),
		System:       handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	telemetryWorker := worker.NewTelemetryWorker(pool, rdb, log)
	go telemetryWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load all ACTIVE exams into Redis BEFORE accepting traffic.
	// This avoids race conditions from lazy loading under thundering herd.
	if err := examService.PrewarmActiveExams(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
