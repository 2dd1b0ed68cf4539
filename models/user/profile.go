package user

import (
	"time"
)

// StudentProfile holds the applicant-facing profile fields that get frozen
// into an application snapshot at submission time.
type StudentProfile struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	Nationality           *string    `gorm:"type:varchar(255)" json:"nationality,omitempty"`
	ResidenceCountry      *string    `gorm:"type:varchar(255)" json:"residence_country,omitempty"`
	DateOfBirth           *time.Time `json:"date_of_birth,omitempty"`
	Gender                *string    `gorm:"type:varchar(50)" json:"gender,omitempty"`
	CurrentEducationLevel *string    `gorm:"type:varchar(100)" json:"current_education_level,omitempty"`
	DesiredEducationLevel *string    `gorm:"type:varchar(100)" json:"desired_education_level,omitempty"`
	GPA                   *string    `gorm:"type:varchar(20)" json:"gpa,omitempty"`
	GPAScale              *string    `gorm:"type:varchar(20)" json:"gpa_scale,omitempty"`
	PrimaryField          *string    `gorm:"type:varchar(255)" json:"primary_field,omitempty"`
	SecondaryField        *string    `gorm:"type:varchar(255)" json:"secondary_field,omitempty"`
	FinancialNeedLevel    *string    `gorm:"type:varchar(50)" json:"financial_need_level,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the StudentProfile model
func (StudentProfile) TableName() string {
	return "student_profiles"
}
