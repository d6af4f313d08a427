package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/repository"
)

// engineError maps repository errors to API responses. The fallback message
// is used for the 500 case so internals never leak to clients.
func engineError(c fiber.Ctx, err error, notFoundMsg, fallbackMsg string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMsg)
	case errors.Is(err, repository.ErrForbidden):
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "You do not own this document")
	case errors.Is(err, repository.ErrConflict):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "CONFLICT", "Concurrent update conflict, please retry")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallbackMsg)
	}
}
