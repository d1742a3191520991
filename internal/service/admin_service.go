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

type AdminService struct {
	userRepo   *repository.UserRepository
	promptRepo *repository.PromptRepository
}

func NewAdminService(userRepo *repository.UserRepository, promptRepo *repository.PromptRepository) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		promptRepo: promptRepo,
	}
}

// Stats holds the admin dashboard counters. UserCount covers member
// accounts only; admin accounts are not part of the community population.
type Stats struct {
	UserCount         int64 `json:"userCount"`
	SharedPromptCount int64 `json:"sharedPromptCount"`
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	userCount, err := s.userRepo.CountNonAdmins(ctx)
	if err != nil {
		logger.Log.Error("Failed to count users", zap.Error(err))
		return nil, apperr.Dependency("Failed to load admin stats", err)
	}

	sharedCount, err := s.promptRepo.CountPublic(ctx)
	if err != nil {
		logger.Log.Error("Failed to count public prompts", zap.Error(err))
		return nil, apperr.Dependency("Failed to load admin stats", err)
	}

	return &Stats{
		UserCount:         userCount,
		SharedPromptCount: sharedCount,
	}, nil
}

func (s *AdminService) UsersSummary(ctx context.Context) ([]repository.UserSummary, error) {
	summaries, err := s.userRepo.SummarizeUsers(ctx)
	if err != nil {
		logger.Log.Error("Failed to summarize users", zap.Error(err))
		return nil, apperr.Dependency("Failed to load users summary", err)
	}
	return summaries, nil
}

// DeleteUser removes a member account with full cascade: likes stripped
// from every prompt (counts re-derived), owned prompts deleted, then the
// account. Admin accounts cannot be deleted through this path.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Log.Error("Failed to look up user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return apperr.Dependency("Failed to delete user", err)
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}
	if user.Role == models.RoleAdmin {
		return apperr.Validation("Cannot delete an admin user")
	}

	if err := s.userRepo.DeleteUserCascade(ctx, userID); err != nil {
		logger.Log.Error("Failed to cascade delete user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return apperr.Dependency("Failed to delete user", err)
	}

	logger.Log.Info("User deleted by admin",
		zap.String("user_id", userID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return nil
}
