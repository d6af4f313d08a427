package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/service"
)

type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Create handles POST /api/documents
func (h *DocumentHandler) Create(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	var req model.CreateDocumentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Title = title

	subject, errMsg := middleware.ValidateSubject(req.Subject)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Subject = subject

	filePath, errMsg := middleware.ValidateFilePath(req.FilePath)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.FilePath = filePath

	fileType, errMsg := middleware.ValidateFileType(req.FileType)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.FileType = fileType

	doc, err := h.svc.Create(c.Context(), identity.ID, req)
	if err != nil {
		return engineError(c, err, "Document not found", "Failed to create document")
	}

	Metrics.UploadsTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// UploadURL handles POST /api/documents/upload-url
func (h *DocumentHandler) UploadURL(c fiber.Ctx) error {
	var req model.UploadURLRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	filePath, errMsg := middleware.ValidateFilePath(req.FilePath)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.FilePath = filePath

	fileType, errMsg := middleware.ValidateFileType(req.FileType)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.FileType = fileType

	url, err := h.svc.UploadURL(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create upload URL")
	}

	return c.JSON(fiber.Map{"url": url})
}

// List handles GET /api/documents?userId=X
func (h *DocumentHandler) List(c fiber.Ctx) error {
	ownerID := fiber.Query[string](c, "userId")
	if ownerID != "" {
		validated, errMsg := middleware.ValidateUserID(ownerID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		ownerID = validated
	}

	docs, err := h.svc.List(c.Context(), ownerID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list documents")
	}

	if docs == nil {
		docs = []model.Document{}
	}
	return c.JSON(docs)
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c fiber.Ctx) error {
	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	callerID := ""
	if identity, ok := middleware.IdentityFrom(c); ok {
		callerID = identity.ID
	}

	resp, err := h.svc.Get(c.Context(), documentID, callerID)
	if err != nil {
		return engineError(c, err, "Document not found", "Failed to fetch document")
	}

	return c.JSON(resp)
}

// Update handles PATCH /api/documents/:id
func (h *DocumentHandler) Update(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.UpdateDocumentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Title = title

	subject, errMsg := middleware.ValidateSubject(req.Subject)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Subject = subject

	if err := h.svc.Update(c.Context(), documentID, identity.ID, req); err != nil {
		return engineError(c, err, "Document not found", "Failed to update document")
	}

	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	identity, _ := middleware.IdentityFrom(c)

	documentID, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Delete(c.Context(), documentID, identity.ID); err != nil {
		return engineError(c, err, "Document not found", "Failed to delete document")
	}

	return c.JSON(fiber.Map{"success": true})
}
