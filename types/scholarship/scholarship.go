package scholarship

import (
	"fmt"
)

// SaveScholarshipRequest represents the request payload for bookmarking a scholarship
type SaveScholarshipRequest struct {
	ScholarshipID uint   `json:"scholarship_id" validate:"required"`
	Notes         string `json:"notes" validate:"omitempty"`
}

func (r SaveScholarshipRequest) Validate() error {
	if r.ScholarshipID == 0 {
		return fmt.Errorf("valid scholarship_id is required")
	}
	return nil
}
