package routes

import (
	"time"

	"metta-coop-api/internal/adapters/http/handlers"
	"metta-coop-api/internal/adapters/http/middleware"
	"metta-coop-api/internal/adapters/persistence/repositories"
	"metta-coop-api/internal/config"
	"metta-coop-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	noticeRepo := repositories.NewNoticeRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, memberRepo, cfg)
	memberService := services.NewMemberService(memberRepo, userRepo)
	transactionService := services.NewTransactionService(transactionRepo, memberRepo, settingsRepo)
	loanService := services.NewLoanService(loanRepo, memberRepo, settingsRepo, transactionService)
	settingsService := services.NewSettingsService(settingsRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	loanHandler := handlers.NewLoanHandler(loanService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	bulletinHandler := handlers.NewBulletinHandler(noticeRepo, eventRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited, never cached)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Use(middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Member routes (authenticated; writes are admin only)
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMemberRoutes(memberRoutes, memberHandler)

	// Transaction routes
	transactionRoutes := apiV1.Group("/transactions")
	transactionRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTransactionRoutes(transactionRoutes, transactionHandler)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLoanRoutes(loanRoutes, loanHandler)

	// Settings routes
	settingsRoutes := apiV1.Group("/settings")
	settingsRoutes.Use(middleware.AuthMiddleware(cfg))
	settingsRoutes.Get("/", settingsHandler.Get)
	settingsRoutes.Put("/", middleware.AdminOnly(), settingsHandler.Update)

	// Bulletin routes (notices and events)
	setupBulletinRoutes(apiV1, bulletinHandler, cfg)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", middleware.AdminOnly(), dashboardHandler.Admin)
	dashboardRoutes.Get("/me", dashboardHandler.Member)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.Refresh)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/:id", handler.Get)

	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/", handler.List)
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Patch("/:id", handler.Update)
}

// setupTransactionRoutes configures ledger routes
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Get("/", handler.List)
	router.Post("/", middleware.AdminOnly(), handler.Record)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Get("/estimate", handler.Estimate)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Apply)
	router.Patch("/:id", middleware.AdminOnly(), handler.Decide)
}

// setupBulletinRoutes configures notice and event routes
func setupBulletinRoutes(router fiber.Router, handler *handlers.BulletinHandler, cfg *config.Config) {
	noticeRoutes := router.Group("/notices")
	noticeRoutes.Use(middleware.AuthMiddleware(cfg))
	noticeRoutes.Get("/", middleware.CacheControl(5*time.Minute), handler.ListNotices)
	noticeRoutes.Post("/", middleware.AdminOnly(), handler.CreateNotice)

	eventRoutes := router.Group("/events")
	eventRoutes.Use(middleware.AuthMiddleware(cfg))
	eventRoutes.Get("/", middleware.CacheControl(5*time.Minute), handler.ListEvents)
	eventRoutes.Post("/", middleware.AdminOnly(), handler.CreateEvent)
}
