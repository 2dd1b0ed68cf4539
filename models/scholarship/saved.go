package scholarship

import (
	"time"

	userModel "scholar-track/models/user"
)

// SavedScholarship bookmarks a scholarship for a user. One row per
// (user, scholarship) pair.
type SavedScholarship struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint           `gorm:"not null;uniqueIndex:idx_saved_user_scholarship" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID" json:"-"`

	ScholarshipID uint        `gorm:"not null;uniqueIndex:idx_saved_user_scholarship" json:"scholarship_id"`
	Scholarship   Scholarship `gorm:"foreignKey:ScholarshipID" json:"scholarship"`

	Notes *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the SavedScholarship model
func (SavedScholarship) TableName() string {
	return "saved_scholarships"
}
