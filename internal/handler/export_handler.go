package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/apperr"
	"github.com/promptvault/promptvault/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type ExportRequest struct {
	IDs []string `json:"ids"`
}

func (r *ExportRequest) parseIDs() ([]uuid.UUID, error) {
	if len(r.IDs) == 0 {
		return nil, apperr.Validation("ids required")
	}
	ids := make([]uuid.UUID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.Validation("Invalid id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func bindExportRequest(c *gin.Context) ([]uuid.UUID, error) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperr.Validation("ids required")
	}
	return req.parseIDs()
}

// JSON handles POST /export/json
func (h *ExportHandler) JSON(c *gin.Context) {
	ids, err := bindExportRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	exported, err := h.exportService.ExportJSON(c.Request.Context(), currentUserID(c), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=prompts.json")
	c.JSON(http.StatusOK, exported)
}

// PDF handles POST /export/pdf
func (h *ExportHandler) PDF(c *gin.Context) {
	ids, err := bindExportRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := h.exportService.ExportPDF(c.Request.Context(), currentUserID(c), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=prompts.pdf")
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Notion handles POST /export/notion
func (h *ExportHandler) Notion(c *gin.Context) {
	ids, err := bindExportRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.exportService.ExportNotes(c.Request.Context(), currentUserID(c), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "exported": count})
}
