package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/service"
)

type AccessHandler struct {
	svc *service.AccessService
}

func NewAccessHandler(svc *service.AccessService) *AccessHandler {
	return &AccessHandler{svc: svc}
}

// RecordView handles POST /api/documents/:id/view. Anonymous views count;
// only authenticated viewers get an access-log row.
func (h *AccessHandler) RecordView(c fiber.Ctx) error {
	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	viewerID := ""
	if identity, ok := middleware.IdentityFrom(c); ok {
		viewerID = identity.ID
	}

	resp, err := h.svc.RecordView(c.Context(), documentID, viewerID)
	if err != nil {
		return engineError(c, err, "Document not found", "Failed to record view")
	}

	Metrics.ViewsTotal.Inc()
	return c.JSON(resp)
}

// LogTime handles POST /api/documents/:id/log-time
func (h *AccessHandler) LogTime(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.LogTimeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := middleware.ValidateSeconds(req.Seconds); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.LogTime(c.Context(), documentID, identity.ID, req.Seconds); err != nil {
		return engineError(c, err, "Document not found", "Failed to log time")
	}

	return c.JSON(fiber.Map{"success": true})
}
