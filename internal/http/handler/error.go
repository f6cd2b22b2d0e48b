package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"libraryapi/internal/http/middleware"
	"libraryapi/internal/service"
)

// errorPayload is the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts the request id stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response. The message is safe
// to render directly in the UI; internal errors are never leaked.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// writeLedgerError translates the ledger's expected, recoverable outcomes
// into HTTP statuses and stable machine-readable codes. Anything outside the
// ledger taxonomy reports as an internal error.
func writeLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTitleNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrNoCopiesAvailable):
		return writeError(c, fiber.StatusConflict, "NO_COPIES_AVAILABLE", err.Error())
	case errors.Is(err, service.ErrAlreadyBorrowed):
		return writeError(c, fiber.StatusConflict, "ALREADY_BORROWED", err.Error())
	case errors.Is(err, service.ErrNotBorrowed):
		return writeError(c, fiber.StatusConflict, "NOT_BORROWED", err.Error())
	case errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrHolderRequired),
		errors.Is(err, service.ErrTitleInvalid):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for errors escaping the handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "admin passkey required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
