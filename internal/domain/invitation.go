package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation is a single-use token granting membership of a workspace
type Invitation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index:idx_invitations_workspace_email,priority:1" json:"workspace_id"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null" json:"sender_id"`
	Email       string     `gorm:"type:varchar(255);not null;index:idx_invitations_workspace_email,priority:2" json:"email"`
	Token       string     `gorm:"type:varchar(64);not null;uniqueIndex:uq_invitations_token" json:"-"`
	IsAccepted  bool       `gorm:"not null;default:false" json:"is_accepted"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (m *Invitation) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
