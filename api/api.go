package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/llm"
	"github.com/inletlabs/attache/pkg/tools"
)

// ChatService is the slice of the agent session the API needs.
type ChatService interface {
	ProcessMessage(ctx context.Context, message string) llm.ProcessedReply
	ClearHistory()
}

// HealthStatus reports whether the agent is fully configured.
type HealthStatus struct {
	Status                  string `json:"status"`
	ConfigurationValid      bool   `json:"configuration_valid"`
	AzureEndpointConfigured bool   `json:"azure_endpoint_configured"`
	APIKeyConfigured        bool   `json:"api_key_configured"`
	DeploymentConfigured    bool   `json:"deployment_configured"`
}

// Server is the HTTP API server for the chat agent.
//
// The service may be nil when the agent is not configured; chat endpoints
// then answer 503 while the health endpoints keep working.
type Server struct {
	config  Config
	service ChatService
	health  HealthStatus
	specs   []tools.Spec
	logger  *zap.Logger
	app     *fiber.App
}

// NewServer creates a new API server.
func NewServer(config Config, service ChatService, health HealthStatus, specs []tools.Spec, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			if code == fiber.StatusInternalServerError {
				logger.Error("unexpected handler error",
					zap.String("path", c.Path()),
					zap.Error(err),
				)
			}
			return c.Status(code).JSON(ErrorResponse{Detail: err.Error()})
		},
	})

	app.Use(recover.New())
	if len(config.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(config.CORSOrigins, ","),
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Content-Type",
			AllowCredentials: true,
		}))
	}

	s := &Server{
		config:  config,
		service: service,
		health:  health,
		specs:   specs,
		logger:  logger,
		app:     app,
	}

	app.Get("/", s.handleRoot)
	app.Get("/health", s.handleHealth)
	app.Get("/tools", s.handleListTools)
	app.Post("/chat", s.handleChat)
	app.Post("/clear-history", s.handleClearHistory)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
