package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scholar-track/constants"
	"scholar-track/logger"
	applicationModel "scholar-track/models/application"
	scholarshipModel "scholar-track/models/scholarship"
	userModel "scholar-track/models/user"
	"scholar-track/services/notifier"
	appTypes "scholar-track/types/application"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mailer delivers the platform-email submission message. Delivery is
// best-effort; the submission transition never waits on or fails with it.
type Mailer interface {
	SendMessage(to, fromDisplayName, replyTo, subject, body string) (bool, error)
}

// Lifecycle is the application state machine. It validates transitions and
// applies the status write, timeline append and snapshot persist as one
// transaction; notification and mail side effects run after commit.
type Lifecycle struct {
	db       *gorm.DB
	repo     *ApplicationRepository
	timeline *TimelineRecorder
	notifier *notifier.Notifier
	mailer   Mailer
	timeout  time.Duration

	// test seam, invoked between the status pre-read and the guarded write
	beforeStatusWrite func()
}

// NewLifecycle creates a new lifecycle engine
func NewLifecycle(db *gorm.DB, n *notifier.Notifier, m Mailer) *Lifecycle {
	return &Lifecycle{
		db:       db,
		repo:     NewApplicationRepository(db),
		timeline: NewTimelineRecorder(db),
		notifier: n,
		mailer:   m,
		timeout:  5 * time.Second,
	}
}

// Repository exposes the engine's repository for read-side callers.
func (le *Lifecycle) Repository() *ApplicationRepository {
	return le.repo
}

// Timeline exposes the engine's timeline recorder for read-side callers.
func (le *Lifecycle) Timeline() *TimelineRecorder {
	return le.timeline
}

func (le *Lifecycle) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, le.timeout)
}

// SubmitResult reports a submission. EmailSent is surfaced separately from
// the transition so callers can retry delivery without re-submitting.
type SubmitResult struct {
	Application *applicationModel.Application
	EmailSent   bool
	EmailSentTo string
}

// StatusChange reports an explicit status transition.
type StatusChange struct {
	OldStatus applicationModel.ApplicationStatus
	NewStatus applicationModel.ApplicationStatus
}

// Create starts a draft application for a scholarship. At most one
// application may exist per (user, scholarship) pair.
func (le *Lifecycle) Create(ctx context.Context, userID uint, req appTypes.CreateApplicationRequest) (*applicationModel.Application, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, validation(err.Error())
	}

	var sch scholarshipModel.Scholarship
	err := le.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", req.ScholarshipID, true).
		First(&sch).Error
	if err != nil {
		return nil, wrapDB(err, "scholarship not found")
	}

	if existing, err := le.repo.FindByOwnerAndScholarship(ctx, userID, req.ScholarshipID); err == nil {
		return nil, &Error{
			Kind:    KindConflict,
			Message: "you already have an application for this scholarship",
			Meta: map[string]interface{}{
				"application_id": existing.ID,
				"status":         existing.Status,
			},
		}
	} else if KindOf(err) != KindNotFound {
		return nil, err
	}

	app := applicationModel.Application{
		UserID:            userID,
		ScholarshipID:     req.ScholarshipID,
		Status:            applicationModel.StatusDraft,
		PersonalStatement: req.PersonalStatement,
		AdditionalInfo:    req.AdditionalInfo,
		Notes:             req.Notes,
	}

	err = le.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := le.repo.WithTx(tx).Create(ctx, &app); err != nil {
			return err
		}
		_, err := le.timeline.Append(tx, app.ID, nil, applicationModel.StatusDraft, "Application started", constants.ActorUser)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &app, nil
}

// Update applies a partial content edit. Only draft and ready applications
// are editable.
func (le *Lifecycle) Update(ctx context.Context, userID, appID uint, req appTypes.UpdateApplicationRequest) (*applicationModel.Application, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()

	app, err := le.repo.FindByOwnerAndID(ctx, userID, appID)
	if err != nil {
		return nil, err
	}
	if !app.Status.IsEditable() {
		return nil, invalidState("cannot edit a submitted application")
	}

	if req.IsEmpty() {
		return nil, validation("no fields to update")
	}

	fields := map[string]interface{}{}
	if req.PersonalStatement != nil {
		fields["personal_statement"] = *req.PersonalStatement
	}
	if req.AdditionalInfo != nil {
		fields["additional_info"] = *req.AdditionalInfo
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if err := le.repo.UpdateFields(ctx, app.ID, fields); err != nil {
		return nil, err
	}

	return le.repo.FindByOwnerAndID(ctx, userID, appID)
}

// Submit freezes the applicant snapshot and moves the application to
// submitted through the selected channel. For the platform email channel
// the delivery outcome is recorded but never blocks the transition.
func (le *Lifecycle) Submit(ctx context.Context, userID, appID uint, req appTypes.SubmitApplicationRequest) (*SubmitResult, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()

	if err := req.Validate(); err != nil {
		return nil, validation(err.Error())
	}
	channel := applicationModel.SubmitChannel(req.SubmitMethod)

	app, err := le.repo.FindByOwnerAndID(ctx, userID, appID)
	if err != nil {
		return nil, err
	}
	if !app.Status.IsEditable() {
		return nil, invalidState("application has already been submitted")
	}

	var applicant userModel.User
	if err := le.db.WithContext(ctx).First(&applicant, userID).Error; err != nil {
		return nil, wrapDB(err, "application not found")
	}
	var profile *userModel.StudentProfile
	var profileRow userModel.StudentProfile
	if err := le.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileRow).Error; err == nil {
		profile = &profileRow
	} else if err != gorm.ErrRecordNotFound {
		return nil, wrapDB(err, "application not found")
	}

	submittedAt := time.Now()
	snap := BuildSnapshot(applicant, profile, app.PersonalStatement, submittedAt)
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, unavailable("failed to encode applicant snapshot", err)
	}

	extra := map[string]interface{}{
		"submitted_at":       submittedAt,
		"submitted_via":      channel,
		"applicant_snapshot": datatypes.JSON(snapJSON),
	}

	emailSent := false
	var note string
	switch channel {
	case applicationModel.ChannelPlatformEmail:
		subject, body := BuildApplicationEmail(snap, app.Scholarship.Title)
		if le.mailer != nil {
			sent, sendErr := le.mailer.SendMessage(req.EmailTo, applicant.FullName(), applicant.Email, subject, body)
			if sendErr != nil {
				logger.Error("Failed to send application email", sendErr)
			}
			emailSent = sent
		}
		extra["email_sent_to"] = req.EmailTo
		extra["email_sent_at"] = time.Now()
		note = fmt.Sprintf("Application submitted via platform email to %s", req.EmailTo)

	case applicationModel.ChannelExternalLink:
		externalURL := req.ExternalURL
		if externalURL == "" && app.Scholarship.ApplicationURL != nil {
			externalURL = *app.Scholarship.ApplicationURL
		}
		if externalURL != "" {
			extra["external_url"] = externalURL
		}
		note = "Application submitted (tracked from external portal)"
	}

	if le.beforeStatusWrite != nil {
		le.beforeStatusWrite()
	}

	fromStatus := app.Status
	err = le.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := le.repo.WithTx(tx).UpdateStatus(ctx, app.ID, fromStatus, applicationModel.StatusSubmitted, extra); err != nil {
			return err
		}
		_, err := le.timeline.Append(tx, app.ID, &fromStatus, applicationModel.StatusSubmitted, note, constants.ActorUser)
		return err
	})
	if err != nil {
		return nil, err
	}

	le.emit(ctx, userID, app.ID, "Application Submitted",
		fmt.Sprintf("Your application to %q has been submitted successfully.", app.Scholarship.Title))

	updated, err := le.repo.FindByOwnerAndID(ctx, userID, appID)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Application: updated, EmailSent: emailSent}
	if channel == applicationModel.ChannelPlatformEmail {
		result.EmailSentTo = req.EmailTo
	}
	return result, nil
}

// ChangeStatus moves an application to an explicit target state. The write
// is guarded on the status read in this call, so of two racing transitions
// exactly one wins and the other gets Conflict.
func (le *Lifecycle) ChangeStatus(ctx context.Context, userID, appID uint, target applicationModel.ApplicationStatus, note, actor string) (*StatusChange, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()

	if !target.IsValid() {
		return nil, validation("invalid status")
	}

	app, err := le.repo.FindByOwnerAndID(ctx, userID, appID)
	if err != nil {
		return nil, err
	}

	oldStatus := app.Status
	if oldStatus == target {
		return nil, validation("application is already in this status")
	}

	extra := map[string]interface{}{}
	if target == applicationModel.StatusSubmitted && app.SubmittedAt == nil {
		extra["submitted_at"] = time.Now()
	}
	if target.IsDecision() {
		extra["result_at"] = time.Now()
	}

	if note == "" {
		note = fmt.Sprintf("Status changed to %s", target)
	}
	if actor == "" {
		actor = constants.ActorUser
	}

	if le.beforeStatusWrite != nil {
		le.beforeStatusWrite()
	}

	err = le.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := le.repo.WithTx(tx).UpdateStatus(ctx, app.ID, oldStatus, target, extra); err != nil {
			return err
		}
		_, err := le.timeline.Append(tx, app.ID, &oldStatus, target, note, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	if title, ok := target.Label(); ok {
		le.emit(ctx, userID, app.ID, title,
			fmt.Sprintf("Your application to %q has been updated to: %s.", app.Scholarship.Title, target))
	}

	return &StatusChange{OldStatus: oldStatus, NewStatus: target}, nil
}

// GetWithTimeline loads one application together with its full audit trail.
func (le *Lifecycle) GetWithTimeline(ctx context.Context, userID, appID uint) (*applicationModel.Application, []applicationModel.TimelineEntry, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()

	var app applicationModel.Application
	err := le.db.WithContext(ctx).
		Preload("Scholarship").
		Preload("Scholarship.Provider").
		Where("id = ? AND user_id = ?", appID, userID).
		First(&app).Error
	if err != nil {
		return nil, nil, wrapDB(err, "application not found")
	}

	entries, err := le.timeline.List(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	return &app, entries, nil
}

// List pages a user's applications. statusFilter accepts a single status or
// the "decided" meta-filter covering the three decision states.
func (le *Lifecycle) List(ctx context.Context, userID uint, statusFilter string, page, perPage int) ([]applicationModel.Application, int64, map[applicationModel.ApplicationStatus]int64, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}

	var statuses []applicationModel.ApplicationStatus
	switch {
	case statusFilter == "decided":
		statuses = []applicationModel.ApplicationStatus{
			applicationModel.StatusAccepted,
			applicationModel.StatusRejected,
			applicationModel.StatusWaitlisted,
		}
	case applicationModel.ApplicationStatus(statusFilter).IsValid():
		statuses = []applicationModel.ApplicationStatus{applicationModel.ApplicationStatus(statusFilter)}
	}

	apps, total, err := le.repo.ListByOwner(ctx, userID, statuses, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, nil, err
	}

	counts, err := le.repo.CountByOwnerGroupedByStatus(ctx, userID)
	if err != nil {
		return nil, 0, nil, err
	}

	return apps, total, counts, nil
}

// StatusCounts returns the user's application pipeline for dashboards.
func (le *Lifecycle) StatusCounts(ctx context.Context, userID uint) (map[applicationModel.ApplicationStatus]int64, error) {
	ctx, cancel := le.opCtx(ctx)
	defer cancel()
	return le.repo.CountByOwnerGroupedByStatus(ctx, userID)
}

func (le *Lifecycle) emit(ctx context.Context, userID, appID uint, title, message string) {
	if le.notifier == nil {
		return
	}
	link := fmt.Sprintf("/applications/%d", appID)
	if err := le.notifier.Emit(ctx, userID, constants.NotificationTypeApplicationUpdate, title, message, link, constants.RelatedTypeApplication, appID); err != nil {
		logger.Error("Failed to emit application notification", err)
	}
}
