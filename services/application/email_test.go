package application

import (
	"strings"
	"testing"
)

func TestBuildApplicationEmail(t *testing.T) {
	snap := SnapshotPayload{
		User: SnapshotUser{FirstName: "Amina", LastName: "Rahman", Email: "amina@example.com"},
		Profile: &SnapshotProfile{
			Nationality:           "Bangladesh",
			CurrentEducationLevel: "bachelors",
			GPA:                   "3.70",
			GPAScale:              "4.0",
			PrimaryField:          "Computer Science",
		},
		PersonalStatement: "I am a dedicated student.",
	}

	subject, body := BuildApplicationEmail(snap, "Chevening Scholarship")

	if subject != "Scholarship Application: Amina Rahman - Chevening Scholarship" {
		t.Errorf("subject = %q", subject)
	}

	for _, want := range []string{
		"Dear Admissions Team,",
		"=== APPLICANT INFORMATION ===",
		"Name: Amina Rahman",
		"Email: amina@example.com",
		"Nationality: Bangladesh",
		"Current Education Level: Bachelors",
		"GPA: 3.70 / 4.0",
		"=== PERSONAL STATEMENT ===",
		"I am a dedicated student.",
		"=== APPLICATION DETAILS ===",
		"Scholarship: Chevening Scholarship",
		"Sincerely,",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBuildApplicationEmailWithoutProfile(t *testing.T) {
	snap := SnapshotPayload{
		User:              SnapshotUser{FirstName: "Amina", LastName: "Rahman", Email: "amina@example.com"},
		PersonalStatement: "Statement.",
	}

	_, body := BuildApplicationEmail(snap, "Chevening Scholarship")
	if !strings.Contains(body, "Name: Amina Rahman") {
		t.Errorf("body missing applicant name")
	}
	if strings.Contains(body, "Nationality:") {
		t.Errorf("body includes profile fields for a profile-less applicant")
	}
}

func TestTitleize(t *testing.T) {
	cases := map[string]string{
		"high_school": "High school",
		"bachelors":   "Bachelors",
		"":            "",
	}
	for in, want := range cases {
		if got := titleize(in); got != want {
			t.Errorf("titleize(%q) = %q, want %q", in, got, want)
		}
	}
}
