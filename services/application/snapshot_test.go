package application

import (
	"reflect"
	"testing"
	"time"

	userModel "scholar-track/models/user"
)

func TestBuildSnapshotIsDeterministic(t *testing.T) {
	nationality := "Bangladesh"
	gpa := "3.70"
	dob := time.Date(2001, 5, 14, 0, 0, 0, 0, time.UTC)
	user := userModel.User{FirstName: "Amina", LastName: "Rahman", Email: "amina@example.com"}
	profile := &userModel.StudentProfile{
		Nationality: &nationality,
		GPA:         &gpa,
		DateOfBirth: &dob,
	}
	submittedAt := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	first := BuildSnapshot(user, profile, "My statement.", submittedAt)
	second := BuildSnapshot(user, profile, "My statement.", submittedAt)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different payloads:\n%+v\n%+v", first, second)
	}

	if first.User.Email != "amina@example.com" {
		t.Errorf("email = %q", first.User.Email)
	}
	if first.Profile.DateOfBirth != "2001-05-14" {
		t.Errorf("date_of_birth = %q", first.Profile.DateOfBirth)
	}
	if first.SubmittedAt != "2026-03-01 10:30:00" {
		t.Errorf("submitted_at = %q", first.SubmittedAt)
	}
	if first.PersonalStatement != "My statement." {
		t.Errorf("personal_statement = %q", first.PersonalStatement)
	}
}

func TestBuildSnapshotDetachesFromSource(t *testing.T) {
	nationality := "Bangladesh"
	profile := &userModel.StudentProfile{Nationality: &nationality}
	user := userModel.User{FirstName: "Amina", LastName: "Rahman", Email: "amina@example.com"}

	snap := BuildSnapshot(user, profile, "Statement.", time.Now())

	// Mutating the source rows afterwards must not affect the payload
	nationality = "Canada"
	user.Email = "changed@example.com"

	if snap.Profile.Nationality != "Bangladesh" {
		t.Errorf("snapshot nationality = %q, want value at build time", snap.Profile.Nationality)
	}
	if snap.User.Email != "amina@example.com" {
		t.Errorf("snapshot email = %q, want value at build time", snap.User.Email)
	}
}

func TestBuildSnapshotWithoutProfile(t *testing.T) {
	user := userModel.User{FirstName: "Amina", LastName: "Rahman", Email: "amina@example.com"}

	snap := BuildSnapshot(user, nil, "", time.Now())
	if snap.Profile != nil {
		t.Errorf("profile = %+v, want nil when the user has no profile", snap.Profile)
	}
	if snap.User.FirstName != "Amina" {
		t.Errorf("first_name = %q", snap.User.FirstName)
	}
}
