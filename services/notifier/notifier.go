package notifier

import (
	"context"

	notificationModel "scholar-track/models/notification"

	"gorm.io/gorm"
)

// Notifier turns lifecycle events into user-visible notification rows.
// Emission is advisory: callers log failures and move on, a lost
// notification never rolls back a state transition.
type Notifier struct {
	db *gorm.DB
}

// NewNotifier creates a new notifier
func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db}
}

// Emit records one notification event for a user.
func (n *Notifier) Emit(ctx context.Context, userID uint, ntype, title, message, link, relatedType string, relatedID uint) error {
	row := notificationModel.Notification{
		UserID:      userID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		Link:        link,
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	}
	return n.db.WithContext(ctx).Create(&row).Error
}
