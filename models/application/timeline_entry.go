package application

import (
	"time"
)

// TimelineEntry is one immutable audit record of a status transition.
// FromStatus is nil on the creation entry. Rows are append-only; no update
// or delete path exists anywhere in the codebase.
type TimelineEntry struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for applications relationship
	ApplicationID uint        `gorm:"not null;index" json:"application_id"`
	Application   Application `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`

	FromStatus *ApplicationStatus `gorm:"type:varchar(50)" json:"from_status,omitempty"`
	ToStatus   ApplicationStatus  `gorm:"type:varchar(50);not null" json:"to_status"`
	Note       string             `gorm:"type:text" json:"note"`
	ChangedBy  string             `gorm:"type:varchar(255);not null" json:"changed_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the TimelineEntry model
func (TimelineEntry) TableName() string {
	return "application_timeline"
}
