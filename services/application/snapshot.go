package application

import (
	"time"

	userModel "scholar-track/models/user"
)

// SnapshotUser is the identity block frozen into a submission.
type SnapshotUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// SnapshotProfile is the profile block frozen into a submission. All fields
// are flattened display values; nothing references live rows.
type SnapshotProfile struct {
	Nationality           string `json:"nationality"`
	ResidenceCountry      string `json:"residence_country"`
	DateOfBirth           string `json:"date_of_birth"`
	Gender                string `json:"gender"`
	CurrentEducationLevel string `json:"current_education_level"`
	DesiredEducationLevel string `json:"desired_education_level"`
	GPA                   string `json:"gpa"`
	GPAScale              string `json:"gpa_scale"`
	PrimaryField          string `json:"primary_field"`
	SecondaryField        string `json:"secondary_field"`
	FinancialNeedLevel    string `json:"financial_need_level"`
}

// SnapshotPayload is the immutable applicant copy stored on the application
// at first successful submission. Profile is nil when the user never filled
// one in.
type SnapshotPayload struct {
	User              SnapshotUser     `json:"user"`
	Profile           *SnapshotProfile `json:"profile"`
	PersonalStatement string           `json:"personal_statement"`
	SubmittedAt       string           `json:"submitted_at"`
}

// BuildSnapshot copies the applicant's current identity, profile and
// statement into a standalone payload. Pure function: identical inputs yield
// a structurally identical payload.
func BuildSnapshot(u userModel.User, p *userModel.StudentProfile, personalStatement string, submittedAt time.Time) SnapshotPayload {
	snap := SnapshotPayload{
		User: SnapshotUser{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		},
		PersonalStatement: personalStatement,
		SubmittedAt:       submittedAt.UTC().Format("2006-01-02 15:04:05"),
	}

	if p != nil {
		profile := SnapshotProfile{
			Nationality:           deref(p.Nationality),
			ResidenceCountry:      deref(p.ResidenceCountry),
			Gender:                deref(p.Gender),
			CurrentEducationLevel: deref(p.CurrentEducationLevel),
			DesiredEducationLevel: deref(p.DesiredEducationLevel),
			GPA:                   deref(p.GPA),
			GPAScale:              deref(p.GPAScale),
			PrimaryField:          deref(p.PrimaryField),
			SecondaryField:        deref(p.SecondaryField),
			FinancialNeedLevel:    deref(p.FinancialNeedLevel),
		}
		if p.DateOfBirth != nil {
			profile.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
		}
		snap.Profile = &profile
	}

	return snap
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
