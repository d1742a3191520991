package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/apperr"
	"github.com/promptvault/promptvault/internal/models"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/internal/utils"
	"github.com/promptvault/promptvault/pkg/logger"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register validates input, hashes the password and persists a new member
// account, returning the user and a signed session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	start := time.Now()

	if err := validateRegisterInput(name, email, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", apperr.Dependency("Registration failed", err)
	}
	if existing != nil {
		logger.Log.Warn("Email already in use",
			zap.String("email", email),
		)
		return nil, "", apperr.Conflict("Email already in use")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", apperr.Dependency("Registration failed", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleMember,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", apperr.Dependency("Registration failed", err)
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", apperr.Dependency("Registration failed", err)
	}

	logger.Log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
		zap.Duration("duration", time.Since(start)),
	)

	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if !emailRegex.MatchString(email) || password == "" {
		return nil, "", apperr.Validation("Invalid input")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", apperr.Dependency("Login failed", err)
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return nil, "", apperr.Authentication("Invalid credentials")
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", apperr.Dependency("Login failed", err)
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", apperr.Authentication("Invalid credentials")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", apperr.Dependency("Login failed", err)
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
	)

	return user, token, nil
}

func validateRegisterInput(name, email, password string) error {
	var fields []apperr.FieldError

	if len(name) < 2 {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "Name required (min 2)"})
	}
	if len(name) > 100 {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "Name too long"})
	}
	if !emailRegex.MatchString(email) || len(email) > 100 {
		fields = append(fields, apperr.FieldError{Field: "email", Message: "Valid email required"})
	}
	if len(password) < 6 {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "Password min length 6"})
	}
	if len(password) > 128 {
		fields = append(fields, apperr.FieldError{Field: "password", Message: "Password too long"})
	}

	if len(fields) > 0 {
		return apperr.Validation("Invalid input", fields...)
	}
	return nil
}
