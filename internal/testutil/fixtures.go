package testutil

import (
	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/models"
	"github.com/promptvault/promptvault/internal/utils"
)

// CreateTestUser builds a user with a real password hash.
func CreateTestUser(name, email, password string, role models.Role) (*models.User, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// DefaultTestUser returns a default member account.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test123456", models.RoleMember)
}

// DefaultAdminUser returns a default admin account.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "admin@example.com", "Admin123456", models.RoleAdmin)
}

// CreateTestPrompt builds a prompt owned by ownerID. Tags are not
// persisted by this helper; insert them through the repository when the
// test needs them.
func CreateTestPrompt(ownerID uuid.UUID, title, text string, isPublic bool) *models.Prompt {
	return &models.Prompt{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Title:    title,
		Text:     text,
		IsPublic: isPublic,
	}
}
