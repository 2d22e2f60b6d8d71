package domain

import "github.com/google/uuid"

// Comment is a note left on a task
type Comment struct {
	BaseModel
	TaskID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_comments_task_id" json:"task_id"`
	AuthorID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_comments_author_id" json:"author_id"`
	Text        string       `gorm:"type:text;not null" json:"text"`
	Attachments []Attachment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
