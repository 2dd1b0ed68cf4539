package application

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// BuildApplicationEmail renders the formal application message sent to a
// provider when a student submits through the platform email channel.
func BuildApplicationEmail(snap SnapshotPayload, scholarshipTitle string) (subject, body string) {
	studentName := strings.TrimSpace(snap.User.FirstName + " " + snap.User.LastName)
	subject = fmt.Sprintf("Scholarship Application: %s - %s", studentName, scholarshipTitle)

	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "ScholarTrack"
	}
	appHost := ""
	if u, err := url.Parse(os.Getenv("APP_URL")); err == nil {
		appHost = u.Host
	}

	var b strings.Builder
	b.WriteString("Dear Admissions Team,\n\n")
	fmt.Fprintf(&b, "I am writing to formally apply for the %s.\n\n", scholarshipTitle)
	b.WriteString("=== APPLICANT INFORMATION ===\n\n")
	fmt.Fprintf(&b, "Name: %s\n", studentName)
	fmt.Fprintf(&b, "Email: %s\n", snap.User.Email)

	if p := snap.Profile; p != nil {
		if p.Nationality != "" {
			fmt.Fprintf(&b, "Nationality: %s\n", p.Nationality)
		}
		if p.DateOfBirth != "" {
			fmt.Fprintf(&b, "Date of Birth: %s\n", p.DateOfBirth)
		}
		if p.CurrentEducationLevel != "" {
			fmt.Fprintf(&b, "Current Education Level: %s\n", titleize(p.CurrentEducationLevel))
		}
		if p.DesiredEducationLevel != "" {
			fmt.Fprintf(&b, "Desired Education Level: %s\n", titleize(p.DesiredEducationLevel))
		}
		if p.PrimaryField != "" {
			fmt.Fprintf(&b, "Field of Study: %s\n", p.PrimaryField)
		}
		if p.GPA != "" && p.GPAScale != "" {
			fmt.Fprintf(&b, "GPA: %s / %s\n", p.GPA, p.GPAScale)
		}
	}

	b.WriteString("\n=== PERSONAL STATEMENT ===\n\n")
	b.WriteString(snap.PersonalStatement)
	b.WriteString("\n")

	b.WriteString("\n=== APPLICATION DETAILS ===\n\n")
	fmt.Fprintf(&b, "Scholarship: %s\n", scholarshipTitle)
	fmt.Fprintf(&b, "Submitted via: %s (https://%s)\n", appName, appHost)
	fmt.Fprintf(&b, "Date: %s\n\n", time.Now().Format("January 2, 2006"))

	b.WriteString("Thank you for considering my application.\n\n")
	b.WriteString("Sincerely,\n")
	fmt.Fprintf(&b, "%s\n%s\n", studentName, snap.User.Email)

	return subject, b.String()
}

// titleize turns an enum value like "high_school" into "High school".
func titleize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
