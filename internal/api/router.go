package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/campuskit/rollcall/internal/api/docs"
	"github.com/campuskit/rollcall/internal/api/handler"
	"github.com/campuskit/rollcall/internal/api/middleware"
	"github.com/campuskit/rollcall/internal/auth"
	"github.com/campuskit/rollcall/internal/domain"
	"github.com/campuskit/rollcall/internal/facial"
	"github.com/campuskit/rollcall/internal/repository"
	"github.com/campuskit/rollcall/internal/service"
)

type Dependencies struct {
	DB          *pgxpool.Pool
	JWTService  *auth.JWTService
	Extractor   *facial.Extractor
	UploadDir   string
	Threshold   float64
	MaxUploadMB int
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	bodyLimit := 10 * 1024 * 1024
	if deps != nil && deps.MaxUploadMB > 0 {
		bodyLimit = deps.MaxUploadMB * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Rollcall API",
		BodyLimit:    bodyLimit,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure authenticated routes if dependencies were provided
	if r.deps == nil {
		return
	}

	sessionRepo := repository.NewClassSessionRepository(r.deps.DB)
	enrollmentRepo := repository.NewEnrollmentRepository(r.deps.DB)
	facialRefRepo := repository.NewFacialReferenceRepository(r.deps.DB)
	attendanceRepo := repository.NewAttendanceRepository(r.deps.DB)
	scanAuditRepo := repository.NewScanAuditRepository(r.deps.DB)
	studentRepo := repository.NewStudentRepository(r.deps.DB)

	recognitionService := service.NewRecognitionService(
		sessionRepo,
		enrollmentRepo,
		facialRefRepo,
		attendanceRepo,
		scanAuditRepo,
		r.deps.Extractor,
		r.deps.UploadDir,
	).WithThreshold(r.deps.Threshold)

	facialDataService := service.NewFacialDataService(
		studentRepo,
		facialRefRepo,
		r.deps.Extractor,
		r.deps.UploadDir,
	)

	scannerService := service.NewScannerService(
		sessionRepo,
		enrollmentRepo,
		facialRefRepo,
		attendanceRepo,
	)

	recognitionHandler := handler.NewRecognitionHandler(recognitionService, r.logger)
	facialDataHandler := handler.NewFacialDataHandler(facialDataService, r.logger)
	scannerHandler := handler.NewScannerHandler(scannerService, r.logger)

	authDeps := middleware.AuthDependencies{
		JWTService: r.deps.JWTService,
		Logger:     r.logger,
	}

	// Per-user rate limiting guards the recognition endpoint; each scan runs
	// detection over the whole gallery.
	r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	v1 := r.app.Group("/v1")

	// Scanner routes are lecturer and admin only
	staff := []domain.Role{domain.RoleLecturer, domain.RoleAdmin}
	v1.Get("/scanner/classes", middleware.Auth(authDeps, staff...), scannerHandler.ListClasses)
	v1.Get("/classes/:class_id/roster", middleware.Auth(authDeps, staff...), scannerHandler.Roster)
	v1.Post("/classes/:class_id/recognitions", middleware.Auth(authDeps, staff...), r.rateLimiter.Handler(), recognitionHandler.Recognize)

	// Facial reference management is admin only
	v1.Post("/students/:student_id/face", middleware.Auth(authDeps, domain.RoleAdmin), facialDataHandler.Upload)
	v1.Get("/students/:student_id/face", middleware.Auth(authDeps, staff...), facialDataHandler.Get)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}
	return r.app.Shutdown()
}
