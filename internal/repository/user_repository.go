package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nexus-project-api/internal/domain"
)

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Upsert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Upsert inserts the profile or overwrites its editable columns
func (r *userRepositoryImpl) Upsert(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "username", "first_name", "last_name", "updated_at"}),
	}).Create(user).Error
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	var users []*domain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the profile. Assignee and uploader references are
// cleared first, memberships and running timers are removed.
func (r *userRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Task{}).Where("assignee_id = ?", id).Update("assignee_id", nil).Error; err != nil {
		return err
	}
	if err := db.Model(&domain.Attachment{}).Where("uploader_id = ?", id).Update("uploader_id", nil).Error; err != nil {
		return err
	}
	if err := db.Model(&domain.Project{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&domain.Membership{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&domain.TimeLog{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&domain.User{}).Error
}
