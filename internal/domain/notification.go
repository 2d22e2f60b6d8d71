package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a per-recipient alert produced by fan-out
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient_read,priority:1" json:"recipient_id"`
	ActorID     uuid.UUID  `gorm:"type:uuid;not null" json:"actor_id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_workspace_id" json:"workspace_id"`
	Verb        string     `gorm:"type:varchar(255);not null" json:"verb"`
	Target      TargetRef  `gorm:"embedded;embeddedPrefix:target_" json:"target"`
	Read        bool       `gorm:"not null;default:false;index:idx_notifications_recipient_read,priority:2" json:"read"`
	ReadAt      *time.Time `gorm:"type:timestamp" json:"read_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_notifications_created_at" json:"created_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (m *Notification) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
