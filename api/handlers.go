package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/utils"
)

const notConfiguredDetail = "Agent service is not properly configured. Please check Azure OpenAI settings."

// ChatRequest is the body of a chat message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ToolInfo describes one available tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// handleRoot returns service identity and version.
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "Intelligent Personal Agent API is running",
		"version": s.config.Version,
	})
}

// handleHealth reports configuration state without exposing any values.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(s.health)
}

// handleListTools returns the available tools in registration order.
func (s *Server) handleListTools(c *fiber.Ctx) error {
	infos := make([]ToolInfo, 0, len(s.specs))
	for _, spec := range s.specs {
		infos = append(infos, ToolInfo{
			Name:        spec.Name,
			Description: spec.Description,
		})
	}
	return c.JSON(fiber.Map{"tools": infos})
}

// handleChat processes one chat message through the agent session.
func (s *Server) handleChat(c *fiber.Ctx) error {
	if s.service == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Detail: notConfiguredDetail})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Detail: "invalid request body"})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Detail: "message is required"})
	}

	s.logger.Info("chat request",
		zap.String("message", utils.Truncate(req.Message, 100)),
	)

	reply := s.service.ProcessMessage(c.Context(), req.Message)
	return c.JSON(reply)
}

// handleClearHistory resets the conversation.
func (s *Server) handleClearHistory(c *fiber.Ctx) error {
	if s.service == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Detail: notConfiguredDetail})
	}

	s.service.ClearHistory()
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Chat history cleared",
	})
}
