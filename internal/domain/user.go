package domain

import "strings"

// User is the local profile of an authenticated identity.
// The ID is the subject issued by the authentication layer.
type User struct {
	BaseModel
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Username  string `gorm:"type:varchar(150)" json:"username"`
	FirstName string `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string `gorm:"type:varchar(150)" json:"last_name"`
}

// FullName returns "First Last", falling back to the email
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
