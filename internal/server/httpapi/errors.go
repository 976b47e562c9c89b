package httpapi

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	var ferr *fiber.Error
	switch {
	case errors.As(err, &ferr):
		return ferr.Code
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists), errors.Is(err, common.ErrorConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler writes {"error": msg}. Internal errors are logged and their
// text is not sent to the client.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		s.logger.Error(context.Background(), "request failed",
			"path", c.Path(),
			"request_id", c.Locals(requestIDKey),
			"error", err,
		)
		msg = "internal error"
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
