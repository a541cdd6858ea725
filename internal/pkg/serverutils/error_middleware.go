package serverutils

import (
	"errors"

	"paper-rag-be/internal/service"
	"paper-rag-be/pkg/rag/executor"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses:
// missing preconditions are 400, invalid payloads 422, failed model or
// store calls 502, everything else 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(&Response{
				Success: false,
				Message: "validation failed",
				Data:    validationErr.Fields,
			})
		}

		if errors.Is(err, executor.ErrNoDocument) ||
			errors.Is(err, service.ErrUnsupportedFileType) ||
			errors.Is(err, service.ErrEmptyDocument) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		}

		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		}

		if errors.Is(err, service.ErrIndexingFailed) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		}

		if errors.Is(err, executor.ErrCollaborator) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
	}
}
