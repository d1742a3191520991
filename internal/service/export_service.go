package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/apperr"
	"github.com/promptvault/promptvault/internal/export"
	"github.com/promptvault/promptvault/internal/models"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/pkg/logger"
	"go.uber.org/zap"
)

// NotesExporter pushes prompts to an external notes service.
type NotesExporter interface {
	Export(ctx context.Context, prompts []models.Prompt) (int, error)
}

type ExportService struct {
	promptRepo *repository.PromptRepository
	notes      NotesExporter
}

func NewExportService(promptRepo *repository.PromptRepository, notes NotesExporter) *ExportService {
	return &ExportService{
		promptRepo: promptRepo,
		notes:      notes,
	}
}

// ExportedPrompt is the portable projection used by JSON export. Ownership
// and like state stay behind.
type ExportedPrompt struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Text        string    `json:"text"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	Folder      string    `json:"folder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *ExportService) ExportJSON(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]ExportedPrompt, error) {
	prompts, err := s.fetchOwned(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	exported := make([]ExportedPrompt, 0, len(prompts))
	for _, p := range prompts {
		exported = append(exported, ExportedPrompt{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Text:        p.Text,
			Tags:        p.Tags,
			Category:    p.Category,
			Folder:      p.Folder,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return exported, nil
}

func (s *ExportService) ExportPDF(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]byte, error) {
	prompts, err := s.fetchOwned(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	doc, err := export.RenderPDF(prompts)
	if err != nil {
		logger.Log.Error("Failed to render PDF", zap.Error(err))
		return nil, apperr.Dependency("Failed to export PDF", err)
	}
	return doc, nil
}

func (s *ExportService) ExportNotes(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int, error) {
	prompts, err := s.fetchOwned(ctx, ownerID, ids)
	if err != nil {
		return 0, err
	}

	count, err := s.notes.Export(ctx, prompts)
	if err != nil {
		if errors.Is(err, export.ErrNotionNotConfigured) {
			return 0, apperr.Validation("Notion not configured. Set NOTION_API_KEY and NOTION_DATABASE_ID.")
		}
		logger.Log.Error("Failed to export to Notion",
			zap.Int("exported", count),
			zap.Error(err),
		)
		return 0, apperr.Dependency("Failed to export to Notion", err)
	}

	logger.Log.Info("Prompts exported to Notion",
		zap.String("owner_id", ownerID.String()),
		zap.Int("count", count),
	)

	return count, nil
}

func (s *ExportService) fetchOwned(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Prompt, error) {
	if len(ids) == 0 {
		return nil, apperr.Validation("ids required")
	}

	prompts, err := s.promptRepo.FindOwnedByIDs(ctx, ownerID, ids)
	if err != nil {
		logger.Log.Error("Failed to fetch prompts for export",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, apperr.Dependency("Failed to fetch prompts", err)
	}
	return prompts, nil
}
