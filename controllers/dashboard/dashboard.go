package dashboard

import (
	"scholar-track/logger"
	"scholar-track/middleware"
	applicationModel "scholar-track/models/application"
	notificationModel "scholar-track/models/notification"
	scholarshipModel "scholar-track/models/scholarship"
	applicationService "scholar-track/services/application"
	"scholar-track/types"
	"scholar-track/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController aggregates per-user stats for the home screen
type DashboardController struct {
	DB        *gorm.DB
	Logger    *logger.AsyncLogger
	Lifecycle *applicationService.Lifecycle
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *gorm.DB, asyncLogger *logger.AsyncLogger, lifecycle *applicationService.Lifecycle) *DashboardController {
	return &DashboardController{
		DB:        db,
		Logger:    asyncLogger,
		Lifecycle: lifecycle,
	}
}

// Stats returns the application pipeline, bookmark and notification counts
// and the latest timeline activity for the authenticated user.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	counts, err := dc.Lifecycle.StatusCounts(c.Context(), user.ID)
	if err != nil {
		logger.Error("Failed to load application counts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var totalApplications int64
	for _, n := range counts {
		totalApplications += n
	}

	var savedCount int64
	err = dc.DB.Model(&scholarshipModel.SavedScholarship{}).
		Where("user_id = ?", user.ID).
		Count(&savedCount).Error
	if err != nil {
		logger.Error("Failed to count saved scholarships", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var unreadCount int64
	err = dc.DB.Model(&notificationModel.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unreadCount).Error
	if err != nil {
		logger.Error("Failed to count unread notifications", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	// Last ten lifecycle events across the user's applications
	var recentActivity []applicationModel.TimelineEntry
	err = dc.DB.
		Joins("JOIN applications ON applications.id = application_timeline.application_id").
		Where("applications.user_id = ?", user.ID).
		Order("application_timeline.created_at DESC, application_timeline.id DESC").
		Limit(10).
		Find(&recentActivity).Error
	if err != nil {
		logger.Error("Failed to load recent activity", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	// Saved scholarships whose deadline lands inside the next 30 days
	var saved []scholarshipModel.SavedScholarship
	err = dc.DB.Preload("Scholarship").
		Where("user_id = ?", user.ID).
		Find(&saved).Error
	if err != nil {
		logger.Error("Failed to load saved scholarships", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	upcoming := make([]scholarshipModel.Scholarship, 0)
	for _, s := range saved {
		if s.Scholarship.IsActive && utils.DeadlineWithinDays(s.Scholarship.Deadline, 30) {
			upcoming = append(upcoming, s.Scholarship)
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data: fiber.Map{
			"applications": fiber.Map{
				"total":     totalApplications,
				"by_status": counts,
			},
			"saved_scholarships":   savedCount,
			"unread_notifications": unreadCount,
			"recent_activity":      recentActivity,
			"upcoming_deadlines":   upcoming,
		},
	})
}
