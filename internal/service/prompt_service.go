package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/apperr"
	"github.com/promptvault/promptvault/internal/models"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/pkg/logger"
	"go.uber.org/zap"
)

type PromptService struct {
	promptRepo *repository.PromptRepository
	suggester  TagSuggester
}

func NewPromptService(promptRepo *repository.PromptRepository, suggester TagSuggester) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		suggester:  suggester,
	}
}

// CreatePromptInput carries the client-supplied fields for a new prompt.
// The owner always comes from the authenticated identity, never the body.
type CreatePromptInput struct {
	Title       string
	Description string
	Text        string
	Tags        []string
	Category    string
	Folder      string
}

// UpdatePromptInput carries a partial edit; nil pointers mean "unchanged".
type UpdatePromptInput struct {
	Title       *string
	Description *string
	Text        *string
	Tags        *[]string
	Category    *string
	Folder      *string
	IsPublic    *bool
}

func (s *PromptService) Create(ctx context.Context, ownerID uuid.UUID, input CreatePromptInput) (*models.Prompt, error) {
	if err := validatePromptContent(input.Title, input.Text); err != nil {
		return nil, err
	}

	tags := input.Tags
	if len(tags) == 0 {
		tags = s.suggester.SuggestTags(input.Text)
	}

	prompt := &models.Prompt{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Text:        input.Text,
		Category:    input.Category,
		Folder:      input.Folder,
		Tags:        tags,
		LikedBy:     []uuid.UUID{},
	}

	if err := s.promptRepo.CreatePrompt(ctx, prompt); err != nil {
		logger.Log.Error("Failed to create prompt",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, apperr.Dependency("Failed to create prompt", err)
	}

	logger.Log.Info("Prompt created",
		zap.String("prompt_id", prompt.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int("tags", len(tags)),
	)

	return prompt, nil
}

func (s *PromptService) List(ctx context.Context, ownerID uuid.UUID, filters repository.PromptFilters) ([]models.Prompt, error) {
	prompts, err := s.promptRepo.FindByOwner(ctx, ownerID, filters)
	if err != nil {
		logger.Log.Error("Failed to list prompts",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, apperr.Dependency("Failed to fetch prompts", err)
	}
	return prompts, nil
}

func (s *PromptService) Get(ctx context.Context, ownerID, promptID uuid.UUID) (*models.Prompt, error) {
	prompt, err := s.promptRepo.FindOwned(ctx, ownerID, promptID)
	if err != nil {
		logger.Log.Error("Failed to get prompt",
			zap.String("prompt_id", promptID.String()),
			zap.Error(err),
		)
		return nil, apperr.Dependency("Failed to fetch prompt", err)
	}
	if prompt == nil {
		return nil, apperr.NotFound("Not found")
	}
	return prompt, nil
}

func (s *PromptService) Update(ctx context.Context, ownerID, promptID uuid.UUID, input UpdatePromptInput) (*models.Prompt, error) {
	changes := map[string]interface{}{}
	if input.Title != nil {
		if len(*input.Title) < 2 {
			return nil, apperr.Validation("Invalid input",
				apperr.FieldError{Field: "title", Message: "Title required (min 2)"})
		}
		changes["title"] = *input.Title
	}
	if input.Text != nil {
		if len(*input.Text) < 5 {
			return nil, apperr.Validation("Invalid input",
				apperr.FieldError{Field: "text", Message: "Text too short (min 5)"})
		}
		changes["text"] = *input.Text
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Category != nil {
		changes["category"] = *input.Category
	}
	if input.Folder != nil {
		changes["folder"] = *input.Folder
	}
	if input.IsPublic != nil {
		changes["is_public"] = *input.IsPublic
	}

	prompt, err := s.promptRepo.UpdateOwned(ctx, ownerID, promptID, changes, input.Tags)
	if err != nil {
		logger.Log.Error("Failed to update prompt",
			zap.String("prompt_id", promptID.String()),
			zap.Error(err),
		)
		return nil, apperr.Dependency("Failed to update prompt", err)
	}
	if prompt == nil {
		return nil, apperr.NotFound("Not found")
	}

	logger.Log.Info("Prompt updated",
		zap.String("prompt_id", promptID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	return prompt, nil
}

// Delete removes an owned prompt. Repeated deletes of the same id keep
// yielding NotFound.
func (s *PromptService) Delete(ctx context.Context, ownerID, promptID uuid.UUID) error {
	deleted, err := s.promptRepo.DeleteOwned(ctx, ownerID, promptID)
	if err != nil {
		logger.Log.Error("Failed to delete prompt",
			zap.String("prompt_id", promptID.String()),
			zap.Error(err),
		)
		return apperr.Dependency("Failed to delete prompt", err)
	}
	if !deleted {
		return apperr.NotFound("Not found")
	}

	logger.Log.Info("Prompt deleted",
		zap.String("prompt_id", promptID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	return nil
}

func validatePromptContent(title, text string) error {
	var fields []apperr.FieldError
	if len(title) < 2 {
		fields = append(fields, apperr.FieldError{Field: "title", Message: "Title required (min 2)"})
	}
	if len(text) < 5 {
		fields = append(fields, apperr.FieldError{Field: "text", Message: "Text too short (min 5)"})
	}
	if len(fields) > 0 {
		return apperr.Validation("Invalid input", fields...)
	}
	return nil
}
