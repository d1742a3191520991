package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/internal/service"
)

type CommunityHandler struct {
	communityService *service.CommunityService
}

func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// Publish handles POST /community/:id/publish
func (h *CommunityHandler) Publish(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	prompt, err := h.communityService.Publish(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// Unpublish handles POST /community/:id/unpublish
func (h *CommunityHandler) Unpublish(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	prompt, err := h.communityService.Unpublish(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// ListPublic handles GET /community/public (no identity required)
func (h *CommunityHandler) ListPublic(c *gin.Context) {
	filters := repository.PublicFilters{
		Query: c.Query("q"),
		Tag:   c.Query("tag"),
		Sort:  c.Query("sort"),
	}

	prompts, err := h.communityService.ListPublic(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompts)
}

// Like handles POST /community/:id/like
func (h *CommunityHandler) Like(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	likes, err := h.communityService.Like(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Unlike handles POST /community/:id/unlike
func (h *CommunityHandler) Unlike(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	likes, err := h.communityService.Unlike(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
