package scholarship

import (
	"time"
)

// Provider represents the organization offering a scholarship.
type Provider struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Type       *string `gorm:"type:varchar(100)" json:"type,omitempty"`
	WebsiteURL *string `gorm:"type:varchar(2048)" json:"website_url,omitempty"`
	LogoURL    *string `gorm:"type:varchar(2048)" json:"logo_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Provider model
func (Provider) TableName() string {
	return "scholarship_providers"
}

// Scholarship represents one catalog listing students can apply to.
type Scholarship struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ProviderID *uint     `gorm:"index" json:"provider_id,omitempty"`
	Provider   *Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`

	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string  `gorm:"type:varchar(255);not null;unique" json:"slug"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	AcademicLevel   *string `gorm:"type:varchar(255)" json:"academic_level,omitempty"`
	AwardType       *string `gorm:"type:varchar(100)" json:"award_type,omitempty"`
	AwardAmountMin  *int64  `json:"award_amount_min,omitempty"`
	AwardAmountMax  *int64  `json:"award_amount_max,omitempty"`
	AwardCurrency   *string `gorm:"type:varchar(10)" json:"award_currency,omitempty"`
	HostCountry     *string `gorm:"type:varchar(255)" json:"host_country,omitempty"`
	HostInstitution *string `gorm:"type:varchar(255)" json:"host_institution,omitempty"`

	Deadline       *time.Time `gorm:"index" json:"deadline,omitempty"`
	DeadlineType   string     `gorm:"type:varchar(50);not null;default:fixed" json:"deadline_type"`
	ApplicationURL *string    `gorm:"type:varchar(2048)" json:"application_url,omitempty"`

	EligibilitySummary *string `gorm:"type:text" json:"eligibility_summary,omitempty"`
	IsActive           bool    `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
