package notification

import (
	"strconv"
	"time"

	"scholar-track/logger"
	"scholar-track/middleware"
	notificationModel "scholar-track/models/notification"
	"scholar-track/types"
	notificationTypes "scholar-track/types/notification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController handles notification feed HTTP requests
type NotificationController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewNotificationController creates a new notification controller
func NewNotificationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *NotificationController {
	return &NotificationController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists the authenticated user's notifications, newest first.
func (nc *NotificationController) Index(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}

	q := nc.DB.Model(&notificationModel.Notification{}).Where("user_id = ?", user.ID)
	if c.Query("unread") == "true" {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		logger.Error("Failed to count notifications", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var unread int64
	err = nc.DB.Model(&notificationModel.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error
	if err != nil {
		logger.Error("Failed to count unread notifications", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var notifications []notificationModel.Notification
	err = q.Order("created_at DESC, id DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&notifications).Error
	if err != nil {
		logger.Error("Failed to list notifications", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notifications retrieved successfully",
		Data: fiber.Map{
			"notifications": notifications,
			"total":         total,
			"unread_count":  unread,
			"page":          page,
			"per_page":      perPage,
		},
	})
}

// MarkRead marks the given notifications as read for the current user.
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	var req notificationTypes.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	now := time.Now()
	res := nc.DB.Model(&notificationModel.Notification{}).
		Where("user_id = ? AND id IN ? AND is_read = ?", user.ID, req.NotificationIDs, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		logger.Error("Failed to mark notifications as read", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notifications marked as read",
		Data:    fiber.Map{"updated": res.RowsAffected},
	})
}

// MarkAllRead marks every unread notification as read.
func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	now := time.Now()
	res := nc.DB.Model(&notificationModel.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		logger.Error("Failed to mark all notifications as read", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "All notifications marked as read",
		Data:    fiber.Map{"updated": res.RowsAffected},
	})
}
