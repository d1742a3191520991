package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/apperr"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/internal/service"
)

type PromptHandler struct {
	promptService *service.PromptService
}

func NewPromptHandler(promptService *service.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

type CreatePromptRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Text        string   `json:"text"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Folder      string   `json:"folder"`
}

type UpdatePromptRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Text        *string   `json:"text"`
	Tags        *[]string `json:"tags"`
	Category    *string   `json:"category"`
	Folder      *string   `json:"folder"`
	IsPublic    *bool     `json:"isPublic"`
}

// idParam parses the :id route parameter. An unparseable id behaves like
// a missing prompt so private ids cannot be probed.
func idParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound("Not found")
	}
	return id, nil
}

// Create handles POST /prompts
func (h *PromptHandler) Create(c *gin.Context) {
	var req CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return
	}

	prompt, err := h.promptService.Create(c.Request.Context(), currentUserID(c), service.CreatePromptInput{
		Title:       req.Title,
		Description: req.Description,
		Text:        req.Text,
		Tags:        req.Tags,
		Category:    req.Category,
		Folder:      req.Folder,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

// List handles GET /prompts
func (h *PromptHandler) List(c *gin.Context) {
	filters := repository.PromptFilters{
		Query:    c.Query("q"),
		Tag:      c.Query("tag"),
		Folder:   c.Query("folder"),
		Category: c.Query("category"),
	}

	prompts, err := h.promptService.List(c.Request.Context(), currentUserID(c), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompts)
}

// Get handles GET /prompts/:id
func (h *PromptHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	prompt, err := h.promptService.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// Update handles PUT /prompts/:id
func (h *PromptHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Invalid request body"))
		return
	}

	prompt, err := h.promptService.Update(c.Request.Context(), currentUserID(c), id, service.UpdatePromptInput{
		Title:       req.Title,
		Description: req.Description,
		Text:        req.Text,
		Tags:        req.Tags,
		Category:    req.Category,
		Folder:      req.Folder,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// Delete handles DELETE /prompts/:id
func (h *PromptHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.promptService.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
