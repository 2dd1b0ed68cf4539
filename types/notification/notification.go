package notification

import (
	"fmt"
)

// MarkReadRequest marks specific notifications as read.
type MarkReadRequest struct {
	NotificationIDs []uint `json:"notification_ids" validate:"required,min=1"`
}

func (r MarkReadRequest) Validate() error {
	if len(r.NotificationIDs) == 0 {
		return fmt.Errorf("notification_ids array is required")
	}
	return nil
}
