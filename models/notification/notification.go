package notification

import (
	"time"

	userModel "scholar-track/models/user"
)

// Notification is a user-visible event row written by the notifier service.
type Notification struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint           `gorm:"not null;index" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID" json:"-"`

	Type    string `gorm:"type:varchar(100);not null" json:"type"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Link    string `gorm:"type:varchar(2048)" json:"link"`

	RelatedType *string `gorm:"type:varchar(100)" json:"related_type,omitempty"`
	RelatedID   *uint   `json:"related_id,omitempty"`

	IsRead bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
