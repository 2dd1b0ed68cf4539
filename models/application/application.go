package application

import (
	"time"

	scholarshipModel "scholar-track/models/scholarship"
	userModel "scholar-track/models/user"

	"gorm.io/datatypes"
)

// Application represents one user's candidacy for one scholarship.
// At most one row may exist per (user, scholarship) pair.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint           `gorm:"not null;uniqueIndex:idx_applications_user_scholarship" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID" json:"user"`

	// Foreign key for scholarships relationship
	ScholarshipID uint                         `gorm:"not null;uniqueIndex:idx_applications_user_scholarship" json:"scholarship_id"`
	Scholarship   scholarshipModel.Scholarship `gorm:"foreignKey:ScholarshipID" json:"scholarship"`

	Status ApplicationStatus `gorm:"type:varchar(50);not null;default:draft;index" json:"status"`

	// Content fields, editable only while Status.IsEditable()
	PersonalStatement string `gorm:"type:text" json:"personal_statement"`
	AdditionalInfo    string `gorm:"type:text" json:"additional_info"`
	Notes             string `gorm:"type:text" json:"notes"`

	// Submission metadata, written at submit time
	SubmittedVia *SubmitChannel `gorm:"type:varchar(50)" json:"submitted_via,omitempty"`
	ExternalURL  *string        `gorm:"type:varchar(2048)" json:"external_url,omitempty"`
	EmailSentTo  *string        `gorm:"type:varchar(255)" json:"email_sent_to,omitempty"`
	EmailSentAt  *time.Time     `json:"email_sent_at,omitempty"`

	// Frozen copy of the applicant profile, written exactly once at first
	// successful submission, never overwritten.
	ApplicantSnapshot datatypes.JSON `gorm:"type:jsonb" json:"applicant_snapshot,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ResultAt    *time.Time `json:"result_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
