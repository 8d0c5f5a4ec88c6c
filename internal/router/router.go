package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/handler"
	"github.com/porikkha/porikkha-backend/internal/middleware"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Exam         *handler.ExamHandler
	Question     *handler.QuestionHandler
	Attempt      *handler.AttemptHandler
	Proctoring   *handler.ProctoringHandler
	Analytics    *handler.AnalyticsHandler
	AI           *handler.AIHandler
	Billing      *handler.BillingHandler
	Notification *handler.NotificationHandler
	StudentMgmt  *handler.StudentManagementHandler
	AdminUser    *handler.AdminUserHandler
	AdminRole    *handler.AdminRoleHandler
	Setting      *handler.SettingHandler
	Dashboard    *handler.DashboardHandler
	WS           *handler.WSHandler
	System       *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/healthz", handlers.System.Health)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/register", handlers.Auth.StudentRegister)
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Anonymous Exam Flow (Public, Rate Limited) ─────────────────
	// Attempt recording and the proctoring lifecycle accept submissions
	// without a token; a null user_id records an anonymous attempt.
	submitLimiter := middleware.NewRateLimiter(60, time.Minute)
	publicAPI := router.Group("/api/v1")
	publicAPI.Use(submitLimiter.Middleware())
	{
		publicAPI.POST("/attempts", handlers.Attempt.RecordAttempt)
		publicAPI.POST("/proctoring/sessions", handlers.Proctoring.StartSession)
		publicAPI.POST("/proctoring/sessions/:session_id/violations", handlers.Proctoring.ReportViolation)
		publicAPI.POST("/proctoring/sessions/:session_id/telemetry", handlers.Proctoring.PushTelemetry)
		publicAPI.POST("/proctoring/sessions/:session_id/end", handlers.Proctoring.EndSession)
	}

	// ─── 3. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Exam catalog (active exams only, summary projection)
		studentAPI.GET("/exams", handlers.Exam.ListExamsForStudent)
		studentAPI.GET("/exams/:id", handlers.Exam.GetExamSummaryForStudent)
		studentAPI.GET("/exams/:id/take", handlers.Exam.GetExamForStudent)
		studentAPI.POST("/exams", handlers.Exam.CreateExam)

		// Attempts
		studentAPI.POST("/attempts", handlers.Attempt.RecordAttempt)
		studentAPI.GET("/attempts/:id", handlers.Attempt.GetAttempt)
		studentAPI.GET("/users/:user_id/attempts", handlers.Attempt.ListUserAttempts)
		studentAPI.GET("/users/:user_id/dashboard", handlers.Analytics.GetStudentDashboard)

		// Proctoring (client-reported)
		studentAPI.POST("/proctoring/sessions", handlers.Proctoring.StartSession)
		studentAPI.GET("/proctoring/sessions/:session_id", handlers.Proctoring.GetSession)
		studentAPI.POST("/proctoring/sessions/:session_id/violations", handlers.Proctoring.ReportViolation)
		studentAPI.POST("/proctoring/sessions/:session_id/telemetry", handlers.Proctoring.PushTelemetry)
		studentAPI.POST("/proctoring/sessions/:session_id/end", handlers.Proctoring.EndSession)

		// Billing
		studentAPI.POST("/payments", handlers.Billing.CreatePayment)
		studentAPI.GET("/users/:user_id/payments", handlers.Billing.ListUserPayments)
		studentAPI.GET("/users/:user_id/subscription", handlers.Billing.GetSubscription)

		// Notifications
		studentAPI.GET("/notifications", handlers.Notification.ListNotifications)
		studentAPI.POST("/notifications/:id/read", handlers.Notification.MarkNotificationRead)
	}

	// ─── 4. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/exams/:exam_id/proctoring", handlers.WS.InvigilatorFeed)
	}

	// ─── 5. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Exam management
		adminAPI.GET("/exams",
			middleware.RequirePermission(string(model.PermissionExamsRead)),
			handlers.Exam.ListExams,
		)
		adminAPI.POST("/exams",
			middleware.RequirePermission(string(model.PermissionExamsWrite)),
			handlers.Exam.CreateExam,
		)
		adminAPI.GET("/exams/:id",
			middleware.RequirePermission(string(model.PermissionExamsRead)),
			handlers.Exam.GetExam,
		)
		adminAPI.PUT("/exams/:id",
			middleware.RequirePermission(string(model.PermissionExamsWrite)),
			handlers.Exam.UpdateExam,
		)
		adminAPI.DELETE("/exams/:id",
			middleware.RequirePermission(string(model.PermissionExamsWrite)),
			handlers.Exam.DeleteExam,
		)
		adminAPI.POST("/exams/:id/status",
			middleware.RequirePermission(string(model.PermissionExamsActivate)),
			handlers.Exam.ChangeExamStatus,
		)

		// Question management
		adminAPI.GET("/exams/:id/questions",
			middleware.RequirePermission(string(model.PermissionExamsRead)),
			handlers.Question.ListQuestions,
		)
		adminAPI.POST("/exams/:id/questions",
			middleware.RequirePermission(string(model.PermissionQuestionsWrite)),
			handlers.Question.AddQuestion,
		)
		adminAPI.POST("/exams/:id/questions/batch",
			middleware.RequirePermission(string(model.PermissionQuestionsWrite)),
			handlers.Question.AddQuestionBatch,
		)
		adminAPI.PUT("/exams/:id/questions",
			middleware.RequirePermission(string(model.PermissionQuestionsWrite)),
			handlers.Question.ReplaceQuestions,
		)

		// Proctoring review. The exam-scoped listing is also open to exam
		// readers so invigilators without the full proctoring role can
		// check their own exams.
		adminAPI.GET("/exams/:id/proctoring/sessions",
			middleware.RequireAnyPermission(
				string(model.PermissionProctoringRead),
				string(model.PermissionExamsRead),
			),
			handlers.Proctoring.ListExamSessions,
		)
		adminAPI.GET("/proctoring/sessions/:session_id",
			middleware.RequirePermission(string(model.PermissionProctoringRead)),
			handlers.Proctoring.GetSession,
		)
		adminAPI.GET("/proctoring/sessions/:session_id/violations",
			middleware.RequirePermission(string(model.PermissionProctoringRead)),
			handlers.Proctoring.ListViolations,
		)

		// Billing review and gateway callbacks
		adminAPI.GET("/payments/:transaction_id",
			middleware.RequirePermission(string(model.PermissionBillingRead)),
			handlers.Billing.GetPayment,
		)
		adminAPI.POST("/payments/:transaction_id/status",
			middleware.RequirePermission(string(model.PermissionBillingWrite)),
			handlers.Billing.UpdatePaymentStatus,
		)

		// Student management
		adminAPI.GET("/students",
			middleware.RequirePermission(string(model.PermissionStudentsRead)),
			handlers.StudentMgmt.ListStudents,
		)
		adminAPI.GET("/students/:id",
			middleware.RequirePermission(string(model.PermissionStudentsRead)),
			handlers.StudentMgmt.GetStudent,
		)
		adminAPI.PUT("/students/:id",
			middleware.RequirePermission(string(model.PermissionStudentsWrite)),
			handlers.StudentMgmt.UpdateStudent,
		)
		adminAPI.DELETE("/students/:id",
			middleware.RequirePermission(string(model.PermissionStudentsWrite)),
			handlers.StudentMgmt.DeleteStudent,
		)
		adminAPI.GET("/students/:id/dashboard",
			middleware.RequirePermission(string(model.PermissionStudentsRead)),
			handlers.Analytics.GetStudentDashboard,
		)

		// Admin user management
		adminAPI.GET("/users",
			middleware.RequirePermission(string(model.PermissionAdminsRead)),
			handlers.AdminUser.ListAdmins,
		)
		adminAPI.POST("/users",
			middleware.RequirePermission(string(model.PermissionAdminsWrite)),
			handlers.AdminUser.CreateAdmin,
		)
		adminAPI.PUT("/users/:id",
			middleware.RequirePermission(string(model.PermissionAdminsWrite)),
			handlers.AdminUser.UpdateAdmin,
		)
		adminAPI.DELETE("/users/:id",
			middleware.RequirePermission(string(model.PermissionAdminsWrite)),
			handlers.AdminUser.DeleteAdmin,
		)

		// Role management
		adminAPI.GET("/roles",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.AdminRole.ListRoles,
		)
		adminAPI.GET("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.AdminRole.GetRole,
		)
		adminAPI.GET("/permissions",
			middleware.RequirePermission(string(model.PermissionRolesRead)),
			handlers.AdminRole.ListPermissions,
		)
		adminAPI.POST("/roles",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.AdminRole.CreateRole,
		)
		adminAPI.PUT("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.AdminRole.UpdateRole,
		)
		adminAPI.DELETE("/roles/:id",
			middleware.RequirePermission(string(model.PermissionRolesWrite)),
			handlers.AdminRole.DeleteRole,
		)

		// App settings
		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", middleware.RequirePermission(string(model.PermissionSettingsRead)), handlers.Setting.GetSettings)
			settingsGroup.PUT("", middleware.RequirePermission(string(model.PermissionSettingsWrite)), handlers.Setting.UpdateSettings)
		}

		// Dashboard and system status (open to all admins)
		adminAPI.GET("/dashboard", handlers.Dashboard.GetDashboard)
		adminAPI.GET("/system/status", handlers.System.Status)
	}

	// ─── 6. AI Gateway (Admin JWT, Rate Limited) ───────────────────────
	aiLimiter := middleware.NewRateLimiter(20, time.Minute)
	aiAPI := router.Group("/api/v1/ai")
	aiAPI.Use(middleware.RequireAdminJWT(authService), aiLimiter.Middleware())
	{
		aiAPI.POST("/questions/generate",
			middleware.RequirePermission(string(model.PermissionQuestionsWrite)),
			handlers.AI.GenerateQuestions,
		)
		aiAPI.POST("/questions/quality",
			middleware.RequirePermission(string(model.PermissionQuestionsWrite)),
			handlers.AI.AssessQuality,
		)
		aiAPI.POST("/plagiarism", handlers.AI.CheckPlagiarism)
		aiAPI.POST("/sentiment", handlers.AI.AnalyzeSentiment)
		aiAPI.POST("/translate", handlers.AI.Translate)
		aiAPI.POST("/speech/synthesize", handlers.AI.Synthesize)
		aiAPI.POST("/speech/transcribe", handlers.AI.Transcribe)
	}

	return router
}
