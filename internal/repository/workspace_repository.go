package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Workspace, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindOwnedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error)
	FindSharedWith(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error)
	Count(ctx context.Context) (int64, error)
}

type workspaceRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new instance of WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepositoryImpl{db: db}
}

func (r *workspaceRepositoryImpl) Create(ctx context.Context, workspace *domain.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *workspaceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&ws).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepositoryImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Workspace{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindOwnedBy lists workspaces owned by the user, by name
func (r *workspaceRepositoryImpl) FindOwnedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	var list []*domain.Workspace
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindSharedWith lists workspaces the user belongs to without owning them
func (r *workspaceRepositoryImpl) FindSharedWith(ctx context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	var list []*domain.Workspace
	if err := r.db.WithContext(ctx).
		Where("owner_id <> ?", userID).
		Where("id IN (?)", r.db.Model(&domain.Membership{}).Select("workspace_id").Where("user_id = ?", userID)).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *workspaceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Workspace{}).Count(&count).Error
	return count, err
}

// MembershipRepository defines the interface for membership data access
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Membership, error)
	// FindByUserAndWorkspace returns nil, nil when the user is not a member
	FindByUserAndWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Membership, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Membership, error)
	IsMember(ctx context.Context, userID, workspaceID uuid.UUID) (bool, error)
	UpdateRole(ctx context.Context, id uuid.UUID, roleID *uuid.UUID) error
	CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error)
	HasRoleNamed(ctx context.Context, userID uuid.UUID, roleName string) (bool, error)
}

type membershipRepositoryImpl struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

func (r *membershipRepositoryImpl) Create(ctx context.Context, membership *domain.Membership) error {
	return r.db.WithContext(ctx).Omit("Role").Create(membership).Error
}

func (r *membershipRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Membership, error) {
	var m domain.Membership
	if err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepositoryImpl) FindByUserAndWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Membership, error) {
	var m domain.Membership
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListByWorkspace returns every membership of a workspace with its role, oldest first
func (r *membershipRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Membership, error) {
	var list []*domain.Membership
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("workspace_id = ?", workspaceID).
		Order("joined_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *membershipRepositoryImpl) IsMember(ctx context.Context, userID, workspaceID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Membership{}).
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, roleID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Membership{}).
		Where("id = ?", id).
		Update("role_id", roleID).Error
}

func (r *membershipRepositoryImpl) CountByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Membership{}).Where("workspace_id = ?", workspaceID).Count(&count).Error
	return count, err
}

// HasRoleNamed reports whether the user holds a role with the given name in any workspace
func (r *membershipRepositoryImpl) HasRoleNamed(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Membership{}).
		Joins("JOIN roles ON roles.id = memberships.role_id").
		Where("memberships.user_id = ? AND roles.name = ?", userID, roleName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	// GetOrCreate returns the named role of the workspace, creating it with isAdmin when absent
	GetOrCreate(ctx context.Context, workspaceID uuid.UUID, name string, isAdmin bool) (*domain.Role, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Role, error)
}

type roleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository creates a new instance of RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepositoryImpl{db: db}
}

func (r *roleRepositoryImpl) Create(ctx context.Context, role *domain.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepositoryImpl) GetOrCreate(ctx context.Context, workspaceID uuid.UUID, name string, isAdmin bool) (*domain.Role, error) {
	role := domain.Role{WorkspaceID: workspaceID, Name: name}
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		Attrs(domain.Role{IsAdminRole: isAdmin}).
		FirstOrCreate(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Role, error) {
	var roles []*domain.Role
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
