package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	// FindPendingByTokenForUpdate locks an unaccepted invitation by token
	FindPendingByTokenForUpdate(ctx context.Context, token string) (*domain.Invitation, error)
	HasPending(ctx context.Context, workspaceID uuid.UUID, email string) (bool, error)
	// MarkAccepted flips is_accepted only if it is still false
	MarkAccepted(ctx context.Context, id uuid.UUID) (bool, error)
}

type invitationRepositoryImpl struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

func (r *invitationRepositoryImpl) Create(ctx context.Context, invitation *domain.Invitation) error {
	return r.db.WithContext(ctx).Omit("Workspace").Create(invitation).Error
}

func (r *invitationRepositoryImpl) FindPendingByTokenForUpdate(ctx context.Context, token string) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := forUpdate(r.db.WithContext(ctx)).
		Where("token = ? AND is_accepted = ?", token, false).
		First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepositoryImpl) HasPending(ctx context.Context, workspaceID uuid.UUID, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("workspace_id = ? AND LOWER(email) = LOWER(?) AND is_accepted = ?", workspaceID, email, false).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *invitationRepositoryImpl) MarkAccepted(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.Invitation{}).
		Where("id = ? AND is_accepted = ?", id, false).
		Update("is_accepted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
