package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// VoteDocument handles POST /api/documents/:id/vote
func (h *VoteHandler) VoteDocument(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CastVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := middleware.ValidateVoteType(req.VoteType); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.CastDocumentVote(c.Context(), documentID, identity.ID, model.VoteType(req.VoteType))
	if err != nil {
		return engineError(c, err, "Document not found", "Failed to cast vote")
	}

	Metrics.VotesTotal.WithLabelValues("document").Inc()
	return c.JSON(resp)
}

// VoteComment handles POST /api/comments/:id/vote
func (h *VoteHandler) VoteComment(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	commentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CastVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if errMsg := middleware.ValidateVoteType(req.VoteType); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.CastCommentVote(c.Context(), commentID, identity.ID, model.VoteType(req.VoteType))
	if err != nil {
		return engineError(c, err, "Comment not found", "Failed to cast vote")
	}

	Metrics.VotesTotal.WithLabelValues("comment").Inc()
	return c.JSON(resp)
}
