package main

import (
	"fmt"

	"studentreg/internal/config"
	"studentreg/internal/handlers"
	"studentreg/internal/metrics"
	"studentreg/internal/middleware"
	"studentreg/internal/repositories"
	"studentreg/internal/services"
	"studentreg/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// App bundles the HTTP app with the services behind it.
type App struct {
	Fiber    *fiber.App
	Students *services.StudentService
	Users    *services.UserService
	Metrics  *metrics.Collector // nil when metrics are disabled
}

// NewApp wires repositories, services and routes. publisher may be nil, in
// which case no student events are sent.
func NewApp(cfg *config.Config, log zerolog.Logger, publisher services.StudentEventPublisher) (*App, error) {
	// --- Initialize Repositories ---
	studentRepo := repositories.NewMemoryStudentRepository(
		repositories.WithDisplayIDAttempts(cfg.DisplayIDTries),
	)
	userRepo := repositories.NewMemoryUserRepository()

	// --- Initialize Services ---
	var collector *metrics.Collector
	opts := []services.StudentServiceOption{services.WithLogger(log)}
	if cfg.MetricsEnabled {
		collector = metrics.New()
		collector.RegisterStudentCount(studentRepo.Count)
		opts = append(opts, services.WithMetrics(collector))
	}
	if publisher != nil {
		opts = append(opts, services.WithPublisher(publisher))
	}
	studentService := services.NewStudentService(studentRepo, validation.New(), opts...)
	userService := services.NewUserService(userRepo, bcrypt.DefaultCost)

	if cfg.AdminUsername != "" {
		admin, err := userService.CreateUser(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Info().Str("username", admin.Username).Msg("seeded admin user")
	}

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:               "studentreg",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(log),
	})

	// --- Middleware ---
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	if collector != nil {
		app.Use(middleware.Metrics(collector))
	}
	// Inside the logger and metrics so recovered panics are still observed.
	app.Use(recover.New())
	if collector != nil {
		app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))
	}

	app.Get("/health", handlers.HandleHealth(studentService))

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewStudentHandler(studentService, log).RegisterRoutes(api)
	api.Get("/courses", handlers.HandleGetCourses)

	return &App{
		Fiber:    app,
		Students: studentService,
		Users:    userService,
		Metrics:  collector,
	}, nil
}
