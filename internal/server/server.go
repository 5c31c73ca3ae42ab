package server

import (
	"log"

	"propscore-webapp-be/internal/bootstrap"
	"propscore-webapp-be/internal/config"
	"propscore-webapp-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // lead-list CSV uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	// Every request gets an identity: JWT when present, anonymous cookie
	// otherwise. The wizard works before signup.
	api.Use(serverutils.IdentityMiddleware)

	c.SearchController.RegisterRoutes(api)
	c.SessionController.RegisterRoutes(api)
	c.LeadsController.RegisterRoutes(api)
	c.ReportController.RegisterRoutes(api)
	c.OutreachController.RegisterRoutes(api)
	c.MarketingController.RegisterRoutes(api)

	c.ProgressHandler.RegisterRoutes(api)
}
