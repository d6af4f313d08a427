package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SyncIdentity upserts the caller's profile before any engine operation
// runs, so foreign keys to the users table always resolve. Anonymous
// requests pass through untouched.
func (h *UserHandler) SyncIdentity() fiber.Handler {
	return func(c fiber.Ctx) error {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			return c.Next()
		}
		if err := h.svc.Sync(c.Context(), identity); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sync profile")
		}
		return c.Next()
	}
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	user, err := h.svc.Lookup(c.Context(), identity.ID)
	if err != nil {
		return engineError(c, err, "User not found", "Failed to fetch profile")
	}

	return c.JSON(user)
}

// GetByUserID handles GET /api/users/:userId
func (h *UserHandler) GetByUserID(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	user, err := h.svc.Lookup(c.Context(), userID)
	if err != nil {
		return engineError(c, err, "User not found", "Failed to lookup user")
	}

	return c.JSON(user)
}

// Leaderboard handles GET /api/leaderboard
func (h *UserHandler) Leaderboard(c fiber.Ctx) error {
	entries, err := h.svc.Leaderboard(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch leaderboard")
	}

	return c.JSON(entries)
}
