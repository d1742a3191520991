package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is the primary content unit: a user-authored text artifact with
// organizational metadata and community visibility/like state.
type Prompt struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	Folder      string    `gorm:"type:varchar(100);index" json:"folder"`
	IsPublic    bool      `gorm:"not null;default:false;index" json:"isPublic"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `gorm:"index" json:"updatedAt"`

	// Hydrated from prompt_tags / prompt_likes by the repository.
	Tags    []string    `gorm:"-" json:"tags"`
	LikedBy []uuid.UUID `gorm:"-" json:"likedBy"`
}

// PromptTag holds one entry of a prompt's ordered tag list.
type PromptTag struct {
	PromptID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"primaryKey;autoIncrement:false"`
	Name     string    `gorm:"type:varchar(64);not null;index"`
}

// PromptLike records that a user liked a prompt. The composite primary key
// enforces at-most-once membership; a duplicate insert is the
// "already liked" case.
type PromptLike struct {
	PromptID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}
