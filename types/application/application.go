package application

import (
	"fmt"

	applicationModel "scholar-track/models/application"
	"scholar-track/utils"
)

// CreateApplicationRequest represents the request payload for starting an application
type CreateApplicationRequest struct {
	ScholarshipID     uint   `json:"scholarship_id" validate:"required"`
	PersonalStatement string `json:"personal_statement" validate:"omitempty"`
	AdditionalInfo    string `json:"additional_info" validate:"omitempty"`
	Notes             string `json:"notes" validate:"omitempty"`
}

// UpdateApplicationRequest carries a partial content update. Only fields
// present in the JSON body are touched, hence the pointers.
type UpdateApplicationRequest struct {
	PersonalStatement *string `json:"personal_statement,omitempty"`
	AdditionalInfo    *string `json:"additional_info,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// SubmitApplicationRequest selects the submission channel and its parameters.
type SubmitApplicationRequest struct {
	SubmitMethod string `json:"submit_method" validate:"required,oneof=platform_email external_link"`
	EmailTo      string `json:"email_to" validate:"omitempty,email"`
	ExternalURL  string `json:"external_url" validate:"omitempty,url"`
}

// ChangeStatusRequest moves an application to an explicit target status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note" validate:"omitempty"`
}

func (r CreateApplicationRequest) Validate() error {
	if r.ScholarshipID == 0 {
		return fmt.Errorf("valid scholarship_id is required")
	}
	return nil
}

// IsEmpty reports whether no content field is present in the update.
func (r UpdateApplicationRequest) IsEmpty() bool {
	return r.PersonalStatement == nil && r.AdditionalInfo == nil && r.Notes == nil
}

func (r SubmitApplicationRequest) Validate() error {
	channel := applicationModel.SubmitChannel(r.SubmitMethod)
	if !channel.IsValid() {
		return fmt.Errorf("invalid submit_method, use platform_email or external_link")
	}
	if channel == applicationModel.ChannelPlatformEmail && !utils.ValidateEmail(r.EmailTo) {
		return fmt.Errorf("valid email_to is required for platform email submission")
	}
	return nil
}

func (r ChangeStatusRequest) Validate() error {
	if !applicationModel.ApplicationStatus(r.Status).IsValid() {
		return fmt.Errorf("invalid status")
	}
	return nil
}
