package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/apperr"
	"github.com/promptvault/promptvault/internal/models"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/pkg/logger"
	"go.uber.org/zap"
)

// publicListingCap bounds the community feed; there is no pagination.
const publicListingCap = 50

type CommunityService struct {
	promptRepo *repository.PromptRepository
}

func NewCommunityService(promptRepo *repository.PromptRepository) *CommunityService {
	return &CommunityService{promptRepo: promptRepo}
}

func (s *CommunityService) Publish(ctx context.Context, ownerID, promptID uuid.UUID) (*models.Prompt, error) {
	return s.setVisibility(ctx, ownerID, promptID, true)
}

func (s *CommunityService) Unpublish(ctx context.Context, ownerID, promptID uuid.UUID) (*models.Prompt, error) {
	return s.setVisibility(ctx, ownerID, promptID, false)
}

func (s *CommunityService) setVisibility(ctx context.Context, ownerID, promptID uuid.UUID, isPublic bool) (*models.Prompt, error) {
	prompt, err := s.promptRepo.SetVisibility(ctx, ownerID, promptID, isPublic)
	if err != nil {
		logger.Log.Error("Failed to toggle prompt visibility",
			zap.String("prompt_id", promptID.String()),
			zap.Bool("is_public", isPublic),
			zap.Error(err),
		)
		return nil, apperr.Dependency("Failed to update prompt", err)
	}
	if prompt == nil {
		return nil, apperr.NotFound("Not found")
	}

	logger.Log.Info("Prompt visibility changed",
		zap.String("prompt_id", promptID.String()),
		zap.Bool("is_public", isPublic),
	)

	return prompt, nil
}

// ListPublic returns up to 50 public prompts. Any caller may invoke it,
// authenticated or not.
func (s *CommunityService) ListPublic(ctx context.Context, filters repository.PublicFilters) ([]models.Prompt, error) {
	prompts, err := s.promptRepo.FindPublic(ctx, filters, publicListingCap)
	if err != nil {
		logger.Log.Error("Failed to list public prompts", zap.Error(err))
		return nil, apperr.Dependency("Failed to fetch public prompts", err)
	}
	return prompts, nil
}

// Like adds the caller to a public prompt's like set and returns the
// re-derived count. Private and missing prompts are indistinguishable.
func (s *CommunityService) Like(ctx context.Context, userID, promptID uuid.UUID) (int, error) {
	likes, found, err := s.promptRepo.AddLike(ctx, promptID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return 0, apperr.Validation("Already liked")
		}
		logger.Log.Error("Failed to like prompt",
			zap.String("prompt_id", promptID.String()),
			zap.Error(err),
		)
		return 0, apperr.Dependency("Failed to like", err)
	}
	if !found {
		return 0, apperr.NotFound("Not found")
	}

	logger.Log.Debug("Prompt liked",
		zap.String("prompt_id", promptID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("likes", likes),
	)

	return likes, nil
}

// Unlike removes the caller from the like set. Removing a non-member is a
// no-op that still returns the current count.
func (s *CommunityService) Unlike(ctx context.Context, userID, promptID uuid.UUID) (int, error) {
	likes, found, err := s.promptRepo.RemoveLike(ctx, promptID, userID)
	if err != nil {
		logger.Log.Error("Failed to unlike prompt",
			zap.String("prompt_id", promptID.String()),
			zap.Error(err),
		)
		return 0, apperr.Dependency("Failed to unlike", err)
	}
	if !found {
		return 0, apperr.NotFound("Not found")
	}

	return likes, nil
}
