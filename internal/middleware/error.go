package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"swasthya-admin/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, domain.ErrSubscriberNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
		errorCode = "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidVertical):
		code = fiber.StatusBadRequest
		message = err.Error()
		errorCode = "BAD_REQUEST"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		code = fiber.StatusBadGateway
		message = "Dispatch failed, retry manually: " + err.Error()
		errorCode = "UPSTREAM_UNAVAILABLE"
	default:
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message

			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusConflict:
				errorCode = "CONFLICT"
			case fiber.StatusUnprocessableEntity:
				errorCode = "VALIDATION_ERROR"
			}
		}
	}

	traceID := uuid.New().String()[:8]

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
