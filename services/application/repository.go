package application

import (
	"context"

	applicationModel "scholar-track/models/application"

	"gorm.io/gorm"
)

// ApplicationRepository is the durable store of application rows. Every
// lookup is owner-scoped: a row belonging to another user is reported as
// NotFound, never as a permission error.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *ApplicationRepository) WithTx(tx *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: tx}
}

// Create inserts a new application row. A duplicate (user, scholarship)
// pair surfaces as Conflict via the composite unique index.
func (r *ApplicationRepository) Create(ctx context.Context, app *applicationModel.Application) error {
	return wrapDB(r.db.WithContext(ctx).Create(app).Error, "application not found")
}

// FindByOwnerAndID loads one application owned by userID.
func (r *ApplicationRepository) FindByOwnerAndID(ctx context.Context, userID, id uint) (*applicationModel.Application, error) {
	var app applicationModel.Application
	err := r.db.WithContext(ctx).
		Preload("Scholarship").
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if err != nil {
		return nil, wrapDB(err, "application not found")
	}
	return &app, nil
}

// FindByOwnerAndScholarship loads the application a user holds for one
// scholarship, if any.
func (r *ApplicationRepository) FindByOwnerAndScholarship(ctx context.Context, userID, scholarshipID uint) (*applicationModel.Application, error) {
	var app applicationModel.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scholarship_id = ?", userID, scholarshipID).
		First(&app).Error
	if err != nil {
		return nil, wrapDB(err, "application not found")
	}
	return &app, nil
}

// UpdateFields applies a partial content update, guarded on the editable
// states. A zero row count means a concurrent writer moved the application
// out of draft/ready after the caller checked it.
func (r *ApplicationRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&applicationModel.Application{}).
		Where("id = ? AND status IN ?", id, []applicationModel.ApplicationStatus{
			applicationModel.StatusDraft,
			applicationModel.StatusReady,
		}).
		Updates(fields)
	if res.Error != nil {
		return wrapDB(res.Error, "application not found")
	}
	if res.RowsAffected == 0 {
		return conflict("application was modified concurrently")
	}
	return nil
}

// UpdateStatus performs the optimistic status write: the UPDATE only matches
// while the row still holds expectedFrom, so a racing transition loses with
// Conflict instead of silently overwriting.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uint, expectedFrom, to applicationModel.ApplicationStatus, extra map[string]interface{}) error {
	fields := map[string]interface{}{"status": to}
	for k, v := range extra {
		fields[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&applicationModel.Application{}).
		Where("id = ? AND status = ?", id, expectedFrom).
		Updates(fields)
	if res.Error != nil {
		return wrapDB(res.Error, "application not found")
	}
	if res.RowsAffected == 0 {
		return conflict("application status changed concurrently")
	}
	return nil
}

// CountByOwnerGroupedByStatus returns the user's application pipeline.
func (r *ApplicationRepository) CountByOwnerGroupedByStatus(ctx context.Context, userID uint) (map[applicationModel.ApplicationStatus]int64, error) {
	type row struct {
		Status applicationModel.ApplicationStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&applicationModel.Application{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDB(err, "application not found")
	}

	counts := make(map[applicationModel.ApplicationStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// ListByOwner pages through a user's applications, newest activity first.
// statuses narrows the result when non-empty.
func (r *ApplicationRepository) ListByOwner(ctx context.Context, userID uint, statuses []applicationModel.ApplicationStatus, limit, offset int) ([]applicationModel.Application, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&applicationModel.Application{}).
		Where("user_id = ?", userID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDB(err, "application not found")
	}

	var apps []applicationModel.Application
	err := q.Preload("Scholarship").Preload("Scholarship.Provider").
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&apps).Error
	if err != nil {
		return nil, 0, wrapDB(err, "application not found")
	}
	return apps, total, nil
}
