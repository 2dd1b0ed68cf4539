package application

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	applicationModel "scholar-track/models/application"
	notificationModel "scholar-track/models/notification"
	scholarshipModel "scholar-track/models/scholarship"
	userModel "scholar-track/models/user"
	"scholar-track/services/notifier"
	appTypes "scholar-track/types/application"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lifecycle.sqlite")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&userModel.User{},
		&userModel.StudentProfile{},
		&scholarshipModel.Provider{},
		&scholarshipModel.Scholarship{},
		&applicationModel.Application{},
		&applicationModel.TimelineEntry{},
		&notificationModel.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

type fakeMailer struct {
	mu        sync.Mutex
	delivered bool
	err       error
	calls     []string
	subjects  []string
}

func (m *fakeMailer) SendMessage(to, fromDisplayName, replyTo, subject, body string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, to)
	m.subjects = append(m.subjects, subject)
	return m.delivered, m.err
}

func newTestLifecycle(t *testing.T, db *gorm.DB, mailer Mailer) *Lifecycle {
	t.Helper()
	return NewLifecycle(db, notifier.NewNotifier(db), mailer)
}

func seedUser(t *testing.T, db *gorm.DB, email string) *userModel.User {
	t.Helper()
	u := userModel.User{
		Uuid:      "uuid-" + email,
		FirstName: "Amina",
		LastName:  "Rahman",
		Email:     email,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &u
}

func seedProfile(t *testing.T, db *gorm.DB, userID uint) *userModel.StudentProfile {
	t.Helper()
	nationality := "Bangladesh"
	gpa := "3.70"
	scale := "4.0"
	p := userModel.StudentProfile{
		UserID:      userID,
		Nationality: &nationality,
		GPA:         &gpa,
		GPAScale:    &scale,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return &p
}

func seedScholarship(t *testing.T, db *gorm.DB, slug string, active bool) *scholarshipModel.Scholarship {
	t.Helper()
	appURL := "https://provider.example.com/apply"
	s := scholarshipModel.Scholarship{
		Title:          "Test Scholarship " + slug,
		Slug:           slug,
		DeadlineType:   "fixed",
		ApplicationURL: &appURL,
		IsActive:       active,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("failed to seed scholarship: %v", err)
	}
	return &s
}

func timelineFor(t *testing.T, db *gorm.DB, appID uint) []applicationModel.TimelineEntry {
	t.Helper()
	var entries []applicationModel.TimelineEntry
	err := db.Where("application_id = ?", appID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		t.Fatalf("failed to load timeline: %v", err)
	}
	return entries
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []notificationModel.Notification {
	t.Helper()
	var rows []notificationModel.Notification
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	return rows
}

func TestCreateStartsDraftWithTimeline(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, &fakeMailer{delivered: true})
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{
		ScholarshipID:     sch.ID,
		PersonalStatement: "My statement",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if app.Status != applicationModel.StatusDraft {
		t.Errorf("status = %s, want draft", app.Status)
	}
	if app.SubmittedAt != nil {
		t.Errorf("submitted_at should be nil on a draft")
	}
	if len(app.ApplicantSnapshot) != 0 {
		t.Errorf("snapshot should be empty on a draft")
	}

	entries := timelineFor(t, db, app.ID)
	if len(entries) != 1 {
		t.Fatalf("timeline has %d entries, want 1", len(entries))
	}
	if entries[0].FromStatus != nil {
		t.Errorf("first entry from_status = %v, want nil", *entries[0].FromStatus)
	}
	if entries[0].ToStatus != applicationModel.StatusDraft {
		t.Errorf("first entry to_status = %s, want draft", entries[0].ToStatus)
	}
	if entries[0].Note != "Application started" {
		t.Errorf("first entry note = %q", entries[0].Note)
	}

	if rows := notificationsFor(t, db, user.ID); len(rows) != 0 {
		t.Errorf("draft creation emitted %d notifications, want 0", len(rows))
	}
}

func TestCreateDuplicateReturnsConflict(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	first, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if KindOf(err) != KindConflict {
		t.Fatalf("duplicate Create error kind = %v, want conflict", KindOf(err))
	}
	meta := MetaOf(err)
	if meta["application_id"] != first.ID {
		t.Errorf("conflict meta application_id = %v, want %d", meta["application_id"], first.ID)
	}

	// Only the first application exists
	var count int64
	db.Model(&applicationModel.Application{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("application count = %d, want 1", count)
	}
}

func TestCreateInactiveScholarshipNotFound(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-inactive", false)

	_, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if KindOf(err) != KindNotFound {
		t.Fatalf("inactive scholarship error kind = %v, want not_found", KindOf(err))
	}
}

func TestUpdateDraftContent(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	statement := "Updated statement"
	updated, err := le.Update(context.Background(), user.ID, app.ID, appTypes.UpdateApplicationRequest{
		PersonalStatement: &statement,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.PersonalStatement != statement {
		t.Errorf("personal_statement = %q, want %q", updated.PersonalStatement, statement)
	}
	if updated.Status != applicationModel.StatusDraft {
		t.Errorf("content edit changed status to %s", updated.Status)
	}

	// Content edits never touch the timeline
	if entries := timelineFor(t, db, app.ID); len(entries) != 1 {
		t.Errorf("timeline has %d entries after edit, want 1", len(entries))
	}
}

func TestUpdateWithNoFieldsRejected(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = le.Update(context.Background(), user.ID, app.ID, appTypes.UpdateApplicationRequest{})
	if KindOf(err) != KindValidation {
		t.Fatalf("empty update error kind = %v, want validation_error", KindOf(err))
	}
}

func TestUpdateAfterSubmitRejected(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{
		SubmitMethod: "external_link",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	statement := "too late"
	_, err = le.Update(context.Background(), user.ID, app.ID, appTypes.UpdateApplicationRequest{
		PersonalStatement: &statement,
	})
	if KindOf(err) != KindInvalidState {
		t.Fatalf("post-submit update error kind = %v, want invalid_state", KindOf(err))
	}
	if !strings.Contains(err.Error(), "cannot edit a submitted application") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestSubmitPlatformEmail(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeMailer{delivered: true}
	le := newTestLifecycle(t, db, mailer)
	user := seedUser(t, db, "amina@example.com")
	seedProfile(t, db, user.ID)
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{
		ScholarshipID:     sch.ID,
		PersonalStatement: "Please consider me.",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{
		SubmitMethod: "platform_email",
		EmailTo:      "admissions@provider.example.com",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if !result.EmailSent {
		t.Errorf("EmailSent = false, want true")
	}
	if result.EmailSentTo != "admissions@provider.example.com" {
		t.Errorf("EmailSentTo = %q", result.EmailSentTo)
	}
	if len(mailer.calls) != 1 || mailer.calls[0] != "admissions@provider.example.com" {
		t.Errorf("mailer calls = %v", mailer.calls)
	}

	got := result.Application
	if got.Status != applicationModel.StatusSubmitted {
		t.Errorf("status = %s, want submitted", got.Status)
	}
	if got.SubmittedAt == nil {
		t.Errorf("submitted_at not stamped")
	}
	if got.SubmittedVia == nil || *got.SubmittedVia != applicationModel.ChannelPlatformEmail {
		t.Errorf("submitted_via = %v", got.SubmittedVia)
	}
	if got.EmailSentTo == nil || *got.EmailSentTo != "admissions@provider.example.com" {
		t.Errorf("email_sent_to = %v", got.EmailSentTo)
	}
	if len(got.ApplicantSnapshot) == 0 {
		t.Fatalf("snapshot not persisted")
	}

	var snap SnapshotPayload
	if err := json.Unmarshal(got.ApplicantSnapshot, &snap); err != nil {
		t.Fatalf("snapshot does not unmarshal: %v", err)
	}
	if snap.User.Email != user.Email {
		t.Errorf("snapshot email = %q, want %q", snap.User.Email, user.Email)
	}
	if snap.Profile == nil || snap.Profile.Nationality != "Bangladesh" {
		t.Errorf("snapshot profile = %+v", snap.Profile)
	}
	if snap.PersonalStatement != "Please consider me." {
		t.Errorf("snapshot personal_statement = %q", snap.PersonalStatement)
	}

	entries := timelineFor(t, db, app.ID)
	if len(entries) != 2 {
		t.Fatalf("timeline has %d entries, want 2", len(entries))
	}
	wantNote := "Application submitted via platform email to admissions@provider.example.com"
	if entries[1].Note != wantNote {
		t.Errorf("submit note = %q, want %q", entries[1].Note, wantNote)
	}

	rows := notificationsFor(t, db, user.ID)
	if len(rows) != 1 {
		t.Fatalf("notifications = %d, want 1", len(rows))
	}
	if rows[0].Title != "Application Submitted" {
		t.Errorf("notification title = %q", rows[0].Title)
	}
	if !strings.Contains(rows[0].Message, sch.Title) {
		t.Errorf("notification message %q does not mention scholarship", rows[0].Message)
	}
}

func TestSubmitSucceedsWhenEmailDeliveryFails(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeMailer{delivered: false, err: context.DeadlineExceeded}
	le := newTestLifecycle(t, db, mailer)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{
		SubmitMethod: "platform_email",
		EmailTo:      "admissions@provider.example.com",
	})
	if err != nil {
		t.Fatalf("Submit failed despite email outage: %v", err)
	}
	if result.EmailSent {
		t.Errorf("EmailSent = true, want false")
	}
	if result.Application.Status != applicationModel.StatusSubmitted {
		t.Errorf("status = %s, want submitted", result.Application.Status)
	}
}

func TestSubmitExternalLinkFallsBackToScholarshipURL(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{
		SubmitMethod: "external_link",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := result.Application
	if got.ExternalURL == nil || *got.ExternalURL != *sch.ApplicationURL {
		t.Errorf("external_url = %v, want %q", got.ExternalURL, *sch.ApplicationURL)
	}
	if got.EmailSentTo != nil {
		t.Errorf("external submission recorded email_sent_to = %v", got.EmailSentTo)
	}

	entries := timelineFor(t, db, app.ID)
	if entries[len(entries)-1].Note != "Application submitted (tracked from external portal)" {
		t.Errorf("submit note = %q", entries[len(entries)-1].Note)
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	_, err = le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"})
	if KindOf(err) != KindInvalidState {
		t.Fatalf("second Submit error kind = %v, want invalid_state", KindOf(err))
	}

	// Rejected submit leaves the timeline untouched
	if entries := timelineFor(t, db, app.ID); len(entries) != 2 {
		t.Errorf("timeline has %d entries, want 2", len(entries))
	}
}

func TestSnapshotSurvivesProfileEdits(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	profile := seedProfile(t, db, user.ID)
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Applicant changes their profile and email after submitting
	newNationality := "Canada"
	if err := db.Model(profile).Update("nationality", &newNationality).Error; err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}
	if err := db.Model(user).Update("email", "new@example.com").Error; err != nil {
		t.Fatalf("failed to update user: %v", err)
	}

	reloaded, _, err := le.GetWithTimeline(context.Background(), user.ID, app.ID)
	if err != nil {
		t.Fatalf("GetWithTimeline failed: %v", err)
	}

	var snap SnapshotPayload
	if err := json.Unmarshal(reloaded.ApplicantSnapshot, &snap); err != nil {
		t.Fatalf("snapshot does not unmarshal: %v", err)
	}
	if snap.User.Email != "amina@example.com" {
		t.Errorf("snapshot email = %q, want the value frozen at submission", snap.User.Email)
	}
	if snap.Profile.Nationality != "Bangladesh" {
		t.Errorf("snapshot nationality = %q, want the value frozen at submission", snap.Profile.Nationality)
	}
}

func TestChangeStatusSameStatusRejected(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusDraft, "", "")
	if KindOf(err) != KindValidation {
		t.Fatalf("no-op transition error kind = %v, want validation_error", KindOf(err))
	}
	if !strings.Contains(err.Error(), "already in this status") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	if entries := timelineFor(t, db, app.ID); len(entries) != 1 {
		t.Errorf("rejected transition appended timeline entries: %d", len(entries))
	}
}

func TestChangeStatusInvalidTarget(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.ApplicationStatus("bogus"), "", "")
	if KindOf(err) != KindValidation {
		t.Fatalf("invalid target error kind = %v, want validation_error", KindOf(err))
	}
}

func TestDecisionStampsResultAtAndNotifies(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	change, err := le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusAccepted, "", "")
	if err != nil {
		t.Fatalf("ChangeStatus failed: %v", err)
	}
	if change.OldStatus != applicationModel.StatusSubmitted || change.NewStatus != applicationModel.StatusAccepted {
		t.Errorf("change = %+v", change)
	}

	reloaded, _, err := le.GetWithTimeline(context.Background(), user.ID, app.ID)
	if err != nil {
		t.Fatalf("GetWithTimeline failed: %v", err)
	}
	if reloaded.ResultAt == nil {
		t.Errorf("result_at not stamped on decision")
	}

	rows := notificationsFor(t, db, user.ID)
	last := rows[len(rows)-1]
	if last.Title != "Application Accepted!" {
		t.Errorf("decision notification title = %q", last.Title)
	}
}

func TestOwnerScopedLookup(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	owner := seedUser(t, db, "owner@example.com")
	intruder := seedUser(t, db, "intruder@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), owner.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, _, err = le.GetWithTimeline(context.Background(), intruder.ID, app.ID)
	if KindOf(err) != KindNotFound {
		t.Fatalf("cross-user lookup error kind = %v, want not_found", KindOf(err))
	}

	_, err = le.ChangeStatus(context.Background(), intruder.ID, app.ID, applicationModel.StatusWithdrawn, "", "")
	if KindOf(err) != KindNotFound {
		t.Fatalf("cross-user transition error kind = %v, want not_found", KindOf(err))
	}
}

func TestConcurrentTransitionsOneWinner(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Hold both goroutines until each has read the current status, so both
	// writes are guarded on the same expected value.
	var barrier sync.WaitGroup
	barrier.Add(2)
	le.beforeStatusWrite = func() {
		barrier.Done()
		barrier.Wait()
	}

	results := make(chan error, 2)
	go func() {
		_, err := le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusUnderReview, "", "")
		results <- err
	}()
	go func() {
		_, err := le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusWithdrawn, "", "")
		results <- err
	}()

	var wins, conflicts int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			wins++
		case KindOf(err) == KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error from racing transition: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins = %d, conflicts = %d; want exactly one of each", wins, conflicts)
	}

	// The loser must not have appended a timeline entry
	entries := timelineFor(t, db, app.ID)
	if len(entries) != 3 {
		t.Errorf("timeline has %d entries, want 3 (create, submit, one transition)", len(entries))
	}
}

func TestFullLifecycleTimeline(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusUnderReview, "", "admin"); err != nil {
		t.Fatalf("under_review transition failed: %v", err)
	}
	if _, err := le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusAccepted, "", "admin"); err != nil {
		t.Fatalf("accepted transition failed: %v", err)
	}

	_, entries, err := le.GetWithTimeline(context.Background(), user.ID, app.ID)
	if err != nil {
		t.Fatalf("GetWithTimeline failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("timeline has %d entries, want 4", len(entries))
	}

	// Each entry's from_status must equal the previous entry's to_status
	for i := 1; i < len(entries); i++ {
		if entries[i].FromStatus == nil || *entries[i].FromStatus != entries[i-1].ToStatus {
			t.Errorf("entry %d breaks the transition chain", i)
		}
	}
	if entries[3].ToStatus != applicationModel.StatusAccepted {
		t.Errorf("final status = %s, want accepted", entries[3].ToStatus)
	}
	if entries[2].Note != "Status changed to under_review" {
		t.Errorf("default note = %q", entries[2].Note)
	}
}

func TestListDecidedMetaFilter(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")

	targets := []applicationModel.ApplicationStatus{
		applicationModel.StatusAccepted,
		applicationModel.StatusRejected,
		applicationModel.StatusWaitlisted,
		applicationModel.StatusUnderReview,
	}
	for i, target := range targets {
		sch := seedScholarship(t, db, "test-"+string(rune('a'+i)), true)
		app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if _, err := le.ChangeStatus(context.Background(), user.ID, app.ID, target, "", "admin"); err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
	}

	apps, total, counts, err := le.List(context.Background(), user.ID, "decided", 1, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("decided total = %d, want 3", total)
	}
	for _, a := range apps {
		if !a.Status.IsDecision() {
			t.Errorf("decided filter returned status %s", a.Status)
		}
	}
	if counts[applicationModel.StatusUnderReview] != 1 {
		t.Errorf("counts[under_review] = %d, want 1", counts[applicationModel.StatusUnderReview])
	}

	apps, total, _, err = le.List(context.Background(), user.ID, "accepted", 1, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || apps[0].Status != applicationModel.StatusAccepted {
		t.Errorf("accepted filter returned total=%d", total)
	}
}

func TestStatusCounts(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")

	for i := 0; i < 3; i++ {
		sch := seedScholarship(t, db, "test-"+string(rune('a'+i)), true)
		app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if i == 0 {
			if _, err := le.Submit(context.Background(), user.ID, app.ID, appTypes.SubmitApplicationRequest{SubmitMethod: "external_link"}); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
		}
	}

	counts, err := le.StatusCounts(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("StatusCounts failed: %v", err)
	}
	if counts[applicationModel.StatusDraft] != 2 {
		t.Errorf("counts[draft] = %d, want 2", counts[applicationModel.StatusDraft])
	}
	if counts[applicationModel.StatusSubmitted] != 1 {
		t.Errorf("counts[submitted] = %d, want 1", counts[applicationModel.StatusSubmitted])
	}
}

func TestChangeStatusAdminToSubmittedStampsSubmittedAt(t *testing.T) {
	db := setupTestDB(t)
	le := newTestLifecycle(t, db, nil)
	user := seedUser(t, db, "amina@example.com")
	sch := seedScholarship(t, db, "test-a", true)

	app, err := le.Create(context.Background(), user.ID, appTypes.CreateApplicationRequest{ScholarshipID: sch.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := time.Now().Add(-time.Second)
	if _, err := le.ChangeStatus(context.Background(), user.ID, app.ID, applicationModel.StatusSubmitted, "", "admin"); err != nil {
		t.Fatalf("ChangeStatus failed: %v", err)
	}

	reloaded, _, err := le.GetWithTimeline(context.Background(), user.ID, app.ID)
	if err != nil {
		t.Fatalf("GetWithTimeline failed: %v", err)
	}
	if reloaded.SubmittedAt == nil || reloaded.SubmittedAt.Before(before) {
		t.Errorf("submitted_at = %v, want a fresh stamp", reloaded.SubmittedAt)
	}
}
