package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/gofiber/fiber/v2"
)

const (
	requestIDKey = "requestid"
	userIDKey    = "userID"
)

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()
	if err != nil {
		// let the error handler set the final status before logging it
		if herr := s.errorHandler(c, err); herr != nil {
			return herr
		}
	}

	s.logger.Info(context.Background(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start),
		"request_id", c.Locals(requestIDKey),
	)

	return nil
}

func (s *Server) authRequired(c *fiber.Ctx) error {
	header := c.Get(common.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	userID, err := s.svc.Users.Authenticate(c.UserContext(), token)
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
	case errors.Is(err, common.ErrInvalidToken):
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	case err != nil:
		return err
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
