package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyLiked is returned when the caller is already present in a
	// prompt's like set.
	ErrAlreadyLiked = errors.New("already liked")
)

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// PromptFilters narrows an owner-scoped listing. Zero values mean "no filter".
type PromptFilters struct {
	Query    string
	Tag      string
	Folder   string
	Category string
}

// PublicFilters narrows the community listing.
type PublicFilters struct {
	Query string
	Tag   string
	Sort  string
}

func (r *PromptRepository) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prompt).Error; err != nil {
			return err
		}
		return replaceTags(tx, prompt.ID, prompt.Tags)
	})
}

func (r *PromptRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filters PromptFilters) ([]models.Prompt, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	q = applyTagFilter(q, filters.Tag)
	if filters.Folder != "" {
		q = q.Where("folder = ?", filters.Folder)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	q = applySearch(q, filters.Query)

	var prompts []models.Prompt
	if err := q.Order("updated_at DESC").Find(&prompts).Error; err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// FindOwned returns the prompt only when it belongs to ownerID; a missing
// prompt and someone else's prompt are indistinguishable (both nil).
func (r *PromptRepository) FindOwned(ctx context.Context, ownerID, promptID uuid.UUID) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", promptID, ownerID).
		First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.hydrateOne(ctx, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// UpdateOwned applies a partial field update to an owned prompt. A non-nil
// tags pointer replaces the whole tag list. Returns nil when the prompt is
// not owned by ownerID.
func (r *PromptRepository) UpdateOwned(ctx context.Context, ownerID, promptID uuid.UUID, changes map[string]interface{}, tags *[]string) (*models.Prompt, error) {
	var updated *models.Prompt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prompt models.Prompt
		err := tx.Where("id = ? AND owner_id = ?", promptID, ownerID).
			First(&prompt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if tags != nil && len(changes) == 0 {
			// tag-only edits still refresh the timestamp
			changes = map[string]interface{}{"updated_at": time.Now()}
		}
		if len(changes) > 0 {
			if err := tx.Model(&prompt).Updates(changes).Error; err != nil {
				return err
			}
		}
		if tags != nil {
			if err := tx.Where("prompt_id = ?", promptID).
				Delete(&models.PromptTag{}).Error; err != nil {
				return err
			}
			if err := replaceTags(tx, promptID, *tags); err != nil {
				return err
			}
		}

		if err := tx.Where("id = ?", promptID).First(&prompt).Error; err != nil {
			return err
		}
		updated = &prompt
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	if err := r.hydrateOne(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteOwned removes an owned prompt with its tag and like rows. The
// returned bool reports whether anything was deleted.
func (r *PromptRepository) DeleteOwned(ctx context.Context, ownerID, promptID uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", promptID, ownerID).
			Delete(&models.Prompt{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Where("prompt_id = ?", promptID).
			Delete(&models.PromptTag{}).Error; err != nil {
			return err
		}
		return tx.Where("prompt_id = ?", promptID).
			Delete(&models.PromptLike{}).Error
	})
	return deleted, err
}

// SetVisibility toggles isPublic on an owned prompt. Returns nil when the
// prompt is not owned by ownerID.
func (r *PromptRepository) SetVisibility(ctx context.Context, ownerID, promptID uuid.UUID, isPublic bool) (*models.Prompt, error) {
	return r.UpdateOwned(ctx, ownerID, promptID, map[string]interface{}{"is_public": isPublic}, nil)
}

// FindPublic lists public prompts. sort "new" orders by creation time,
// anything else by like count with recency as tie-break.
func (r *PromptRepository) FindPublic(ctx context.Context, filters PublicFilters, limit int) ([]models.Prompt, error) {
	q := r.db.WithContext(ctx).Where("is_public = ?", true)
	q = applyTagFilter(q, filters.Tag)
	q = applySearch(q, filters.Query)

	if filters.Sort == "new" {
		q = q.Order("created_at DESC")
	} else {
		q = q.Order("likes DESC").Order("updated_at DESC")
	}

	var prompts []models.Prompt
	if err := q.Limit(limit).Find(&prompts).Error; err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// AddLike records userID in the prompt's like set and re-derives the like
// count, all inside one transaction so concurrent likes cannot lose
// updates. Returns nil prompt when no public prompt with that id exists and
// ErrAlreadyLiked on duplicate membership.
func (r *PromptRepository) AddLike(ctx context.Context, promptID, userID uuid.UUID) (int, bool, error) {
	likes := 0
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Prompt{}).
			Where("id = ? AND is_public = ?", promptID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		like := models.PromptLike{PromptID: promptID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}

		return r.recountLikes(tx, promptID, &likes)
	})
	return likes, found, err
}

// RemoveLike deletes userID from the like set. Removing a non-member is a
// no-op that still re-derives and returns the count.
func (r *PromptRepository) RemoveLike(ctx context.Context, promptID, userID uuid.UUID) (int, bool, error) {
	likes := 0
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Prompt{}).
			Where("id = ? AND is_public = ?", promptID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		if err := tx.Where("prompt_id = ? AND user_id = ?", promptID, userID).
			Delete(&models.PromptLike{}).Error; err != nil {
			return err
		}

		return r.recountLikes(tx, promptID, &likes)
	})
	return likes, found, err
}

func (r *PromptRepository) recountLikes(tx *gorm.DB, promptID uuid.UUID, likes *int) error {
	err := tx.Model(&models.Prompt{}).
		Where("id = ?", promptID).
		Updates(map[string]interface{}{
			"likes": gorm.Expr("(SELECT COUNT(*) FROM prompt_likes WHERE prompt_likes.prompt_id = ?)", promptID),
		}).Error
	if err != nil {
		return err
	}
	var prompt models.Prompt
	if err := tx.Select("likes").Where("id = ?", promptID).Take(&prompt).Error; err != nil {
		return err
	}
	*likes = prompt.Likes
	return nil
}

func (r *PromptRepository) CountPublic(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Prompt{}).
		Where("is_public = ?", true).
		Count(&count).Error
	return count, err
}

// FindOwnedByIDs fetches the subset of ids owned by ownerID, for export.
func (r *PromptRepository) FindOwnedByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func applyTagFilter(q *gorm.DB, tag string) *gorm.DB {
	if tag == "" {
		return q
	}
	return q.Where(
		"EXISTS (SELECT 1 FROM prompt_tags WHERE prompt_tags.prompt_id = prompts.id AND prompt_tags.name = ?)",
		tag,
	)
}

func applySearch(q *gorm.DB, query string) *gorm.DB {
	if query == "" {
		return q
	}
	like := "%" + strings.ToLower(query) + "%"
	return q.Where(
		"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(text) LIKE ?)",
		like, like, like,
	)
}

func replaceTags(tx *gorm.DB, promptID uuid.UUID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.PromptTag, 0, len(tags))
	for i, name := range tags {
		rows = append(rows, models.PromptTag{
			PromptID: promptID,
			Position: i,
			Name:     name,
		})
	}
	return tx.Create(&rows).Error
}

func (r *PromptRepository) hydrateOne(ctx context.Context, prompt *models.Prompt) error {
	prompts := []models.Prompt{*prompt}
	if err := r.hydrate(ctx, prompts); err != nil {
		return err
	}
	*prompt = prompts[0]
	return nil
}

// hydrate fills the Tags and LikedBy projections for a batch of prompts
// with one query per relation.
func (r *PromptRepository) hydrate(ctx context.Context, prompts []models.Prompt) error {
	ids := make([]uuid.UUID, 0, len(prompts))
	index := make(map[uuid.UUID]int, len(prompts))
	for i := range prompts {
		prompts[i].Tags = []string{}
		prompts[i].LikedBy = []uuid.UUID{}
		ids = append(ids, prompts[i].ID)
		index[prompts[i].ID] = i
	}
	if len(ids) == 0 {
		return nil
	}

	var tags []models.PromptTag
	err := r.db.WithContext(ctx).
		Where("prompt_id IN ?", ids).
		Order("prompt_id").Order("position").
		Find(&tags).Error
	if err != nil {
		return err
	}
	for _, t := range tags {
		i := index[t.PromptID]
		prompts[i].Tags = append(prompts[i].Tags, t.Name)
	}

	var likes []models.PromptLike
	err = r.db.WithContext(ctx).
		Where("prompt_id IN ?", ids).
		Order("created_at").
		Find(&likes).Error
	if err != nil {
		return err
	}
	for _, l := range likes {
		i := index[l.PromptID]
		prompts[i].LikedBy = append(prompts[i].LikedBy, l.UserID)
	}

	return nil
}
