package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CountNonAdmins counts member accounts. Admin accounts are excluded from
// the community statistics.
func (r *UserRepository) CountNonAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role <> ?", models.RoleAdmin).
		Count(&count).Error
	return count, err
}

// UserSummary is one row of the admin users overview: a member account and
// how many of their prompts are shared publicly.
type UserSummary struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	SharedPromptCount int64  `json:"sharedPromptCount"`
}

// SummarizeUsers joins users against their public prompt counts, most
// shared first, ties broken by email.
func (r *UserRepository) SummarizeUsers(ctx context.Context) ([]UserSummary, error) {
	var summaries []UserSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT users.email AS email,
		       users.name AS name,
		       COUNT(prompts.id) AS shared_prompt_count
		FROM users
		LEFT JOIN prompts
		  ON prompts.owner_id = users.id AND prompts.is_public = ?
		WHERE users.role <> ?
		GROUP BY users.id, users.email, users.name
		ORDER BY shared_prompt_count DESC, users.email ASC`,
		true, models.RoleAdmin,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeleteUserCascade removes a user and everything referencing them inside
// one transaction: their likes are stripped from all prompts (with like
// counts re-derived), their own prompts deleted with tag/like rows, then
// the account itself.
func (r *UserRepository) DeleteUserCascade(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Strip the user's likes from other prompts and keep counts in sync.
		var likedPromptIDs []uuid.UUID
		if err := tx.Model(&models.PromptLike{}).
			Where("user_id = ?", userID).
			Pluck("prompt_id", &likedPromptIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.PromptLike{}).Error; err != nil {
			return err
		}
		if len(likedPromptIDs) > 0 {
			if err := tx.Exec(`
				UPDATE prompts
				SET likes = (SELECT COUNT(*) FROM prompt_likes WHERE prompt_likes.prompt_id = prompts.id)
				WHERE id IN ?`, likedPromptIDs).Error; err != nil {
				return err
			}
		}

		// 2. Delete prompts owned by the user, including their tag and like rows.
		var ownedPromptIDs []uuid.UUID
		if err := tx.Model(&models.Prompt{}).
			Where("owner_id = ?", userID).
			Pluck("id", &ownedPromptIDs).Error; err != nil {
			return err
		}
		if len(ownedPromptIDs) > 0 {
			if err := tx.Where("prompt_id IN ?", ownedPromptIDs).
				Delete(&models.PromptTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("prompt_id IN ?", ownedPromptIDs).
				Delete(&models.PromptLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ownedPromptIDs).
				Delete(&models.Prompt{}).Error; err != nil {
				return err
			}
		}

		// 3. Finally delete the user record.
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
}
