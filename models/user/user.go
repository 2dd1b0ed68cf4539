package user

import (
	"time"
)

// User model for platform accounts. Credentials and OAuth identities live in
// the identity service; this table only mirrors what the platform needs.
type User struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	FirstName     string  `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName      string  `gorm:"type:varchar(255);not null" json:"last_name"`
	Email         string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	EmailVerified bool    `gorm:"type:bool;default:false" json:"email_verified"`
	Avatar        *string `gorm:"type:varchar(2048)" json:"avatar,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// FullName joins first and last name for display and outgoing mail.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
