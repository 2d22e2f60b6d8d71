package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups the repositories that share one database handle.
// Inside Transaction every repository obtained from tx runs on the
// same transaction.
type Store interface {
	Users() UserRepository
	Workspaces() WorkspaceRepository
	Memberships() MembershipRepository
	Roles() RoleRepository
	Projects() ProjectRepository
	Tasks() TaskRepository
	TimeLogs() TimeLogRepository
	CustomFields() CustomFieldRepository
	Comments() CommentRepository
	Attachments() AttachmentRepository
	Activities() ActivityRepository
	Notifications() NotificationRepository
	Invitations() InvitationRepository

	// Transaction runs fn in a database transaction. Returning an error
	// rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository                 { return NewUserRepository(s.db) }
func (s *store) Workspaces() WorkspaceRepository       { return NewWorkspaceRepository(s.db) }
func (s *store) Memberships() MembershipRepository     { return NewMembershipRepository(s.db) }
func (s *store) Roles() RoleRepository                 { return NewRoleRepository(s.db) }
func (s *store) Projects() ProjectRepository           { return NewProjectRepository(s.db) }
func (s *store) Tasks() TaskRepository                 { return NewTaskRepository(s.db) }
func (s *store) TimeLogs() TimeLogRepository           { return NewTimeLogRepository(s.db) }
func (s *store) CustomFields() CustomFieldRepository   { return NewCustomFieldRepository(s.db) }
func (s *store) Comments() CommentRepository           { return NewCommentRepository(s.db) }
func (s *store) Attachments() AttachmentRepository     { return NewAttachmentRepository(s.db) }
func (s *store) Activities() ActivityRepository        { return NewActivityRepository(s.db) }
func (s *store) Notifications() NotificationRepository { return NewNotificationRepository(s.db) }
func (s *store) Invitations() InvitationRepository     { return NewInvitationRepository(s.db) }

// Transaction runs fn inside a gorm transaction
func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// The database must be opened with TranslateError enabled.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err means no row matched
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Page is an offset/limit window
type Page struct {
	Offset int
	Limit  int
}

// NewPage converts a 1-based page number into an offset window
func NewPage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return Page{Offset: (page - 1) * size, Limit: size}
}

// forUpdate adds SELECT ... FOR UPDATE; SQLite ignores it
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
