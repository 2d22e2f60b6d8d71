package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/repository"
	"nexus-project-api/internal/response"
)

// UserService defines the interface for user profile logic
type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpsertMe(ctx context.Context, userID uuid.UUID, req *dto.UpsertUserRequest) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(store repository.Store, logger *zap.Logger) UserService {
	return &userServiceImpl{store: store, logger: logger}
}

func (s *userServiceImpl) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, internal("Failed to load user", err)
	}
	return dto.NewUserResponse(user), nil
}

// UpsertMe creates or replaces the caller's profile. The ID always comes
// from the token, never from the payload.
func (s *userServiceImpl) UpsertMe(ctx context.Context, userID uuid.UUID, req *dto.UpsertUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("Failed to check email", err)
	}
	if existing != nil && existing.ID != userID {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email is already in use", "")
	}

	user := &domain.User{
		BaseModel: domain.BaseModel{ID: userID},
		Email:     email,
		Username:  strings.TrimSpace(req.Username),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.store.Users().Upsert(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email is already in use", "")
		}
		return nil, internal("Failed to save user", err)
	}

	saved, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, internal("Failed to load user", err)
	}
	s.logger.Debug("User profile saved", zap.String("user_id", userID.String()))
	return dto.NewUserResponse(saved), nil
}
