package application

import (
	"context"

	applicationModel "scholar-track/models/application"

	"gorm.io/gorm"
)

// TimelineRecorder appends and reads the append-only status audit log.
// Entries are never updated or deleted once written.
type TimelineRecorder struct {
	db *gorm.DB
}

// NewTimelineRecorder creates a new timeline recorder
func NewTimelineRecorder(db *gorm.DB) *TimelineRecorder {
	return &TimelineRecorder{db: db}
}

// Append writes one transition entry inside the caller's transaction so the
// entry commits or rolls back together with the status write.
func (t *TimelineRecorder) Append(tx *gorm.DB, applicationID uint, from *applicationModel.ApplicationStatus, to applicationModel.ApplicationStatus, note, actor string) (*applicationModel.TimelineEntry, error) {
	entry := applicationModel.TimelineEntry{
		ApplicationID: applicationID,
		FromStatus:    from,
		ToStatus:      to,
		Note:          note,
		ChangedBy:     actor,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, wrapDB(err, "application not found")
	}
	return &entry, nil
}

// List returns every entry for an application, ascending by creation time.
// Paging, when a caller needs it, belongs to the API layer.
func (t *TimelineRecorder) List(ctx context.Context, applicationID uint) ([]applicationModel.TimelineEntry, error) {
	var entries []applicationModel.TimelineEntry
	err := t.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, wrapDB(err, "application not found")
	}
	return entries, nil
}
