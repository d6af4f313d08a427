package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/service"
)

type BookmarkHandler struct {
	svc *service.DocumentService
}

func NewBookmarkHandler(svc *service.DocumentService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

// Toggle handles POST /api/documents/:id/bookmark
func (h *BookmarkHandler) Toggle(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.ToggleBookmark(c.Context(), documentID, identity.ID)
	if err != nil {
		return engineError(c, err, "Document not found", "Failed to toggle bookmark")
	}

	return c.JSON(resp)
}

// List handles GET /api/bookmarks
func (h *BookmarkHandler) List(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	bookmarks, err := h.svc.ListBookmarks(c.Context(), identity.ID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookmarks")
	}

	if bookmarks == nil {
		bookmarks = []model.BookmarkedDocument{}
	}
	return c.JSON(bookmarks)
}
