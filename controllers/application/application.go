package application

import (
	"fmt"
	"strconv"

	"scholar-track/constants"
	"scholar-track/logger"
	"scholar-track/middleware"
	applicationModel "scholar-track/models/application"
	applicationService "scholar-track/services/application"
	"scholar-track/types"
	applicationTypes "scholar-track/types/application"
	"scholar-track/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplicationController handles application lifecycle HTTP requests
type ApplicationController struct {
	DB        *gorm.DB
	Logger    *logger.AsyncLogger
	Lifecycle *applicationService.Lifecycle
}

// NewApplicationController creates a new application controller
func NewApplicationController(db *gorm.DB, asyncLogger *logger.AsyncLogger, lifecycle *applicationService.Lifecycle) *ApplicationController {
	return &ApplicationController{
		DB:        db,
		Logger:    asyncLogger,
		Lifecycle: lifecycle,
	}
}

// Helper function to log API requests and responses
func (ac *ApplicationController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	ac.Logger.Log(logEntry)
}

// statusForKind maps lifecycle error kinds onto HTTP statuses.
func statusForKind(err error) int {
	switch applicationService.KindOf(err) {
	case applicationService.KindValidation, applicationService.KindInvalidState:
		return fiber.StatusUnprocessableEntity
	case applicationService.KindNotFound:
		return fiber.StatusNotFound
	case applicationService.KindConflict:
		return fiber.StatusConflict
	case applicationService.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusForKind(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Unexpected application error", err)
		return c.Status(status).JSON(types.ApiResponse{
			Status:  status,
			Message: "Something went wrong",
			Data:    nil,
		})
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: err.Error(),
		Data:    applicationService.MetaOf(err),
	})
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid application id")
	}
	return uint(id), nil
}

// Index lists the authenticated user's applications with status counts.
func (ac *ApplicationController) Index(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	statusFilter := c.Query("status")

	apps, total, counts, err := ac.Lifecycle.List(c.Context(), user.ID, statusFilter, page, perPage)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Applications retrieved successfully",
		Data: fiber.Map{
			"applications": apps,
			"total":        total,
			"page":         page,
			"per_page":     perPage,
			"counts":       counts,
		},
	})
}

// Show returns one application with its full timeline.
func (ac *ApplicationController) Show(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	appID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	app, timeline, err := ac.Lifecycle.GetWithTimeline(c.Context(), user.ID, appID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Application retrieved successfully",
		Data: fiber.Map{
			"application": app,
			"timeline":    timeline,
		},
	})
}

// Store starts a draft application for a scholarship.
func (ac *ApplicationController) Store(c *fiber.Ctx) error {
	var req applicationTypes.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
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

	app, err := ac.Lifecycle.Create(c.Context(), user.ID, req)
	if err != nil {
		return respondError(c, err)
	}

	logger.Success(fmt.Sprintf("Application %d started for scholarship %d", app.ID, app.ScholarshipID))
	result := c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Application started successfully",
		Data:    app,
	})
	ac.logAPIRequest(c)
	return result
}

// Update edits a draft or ready application's content fields.
func (ac *ApplicationController) Update(c *fiber.Ctx) error {
	var req applicationTypes.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
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

	appID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	app, err := ac.Lifecycle.Update(c.Context(), user.ID, appID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Application updated successfully",
		Data:    app,
	})
}

// Submit finalizes an application through the selected channel.
func (ac *ApplicationController) Submit(c *fiber.Ctx) error {
	var req applicationTypes.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
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

	appID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	result, err := ac.Lifecycle.Submit(c.Context(), user.ID, appID, req)
	if err != nil {
		return respondError(c, err)
	}

	logger.Success(fmt.Sprintf("Application %d submitted", appID))
	resp := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Application submitted successfully",
		Data: fiber.Map{
			"application":   result.Application,
			"email_sent":    result.EmailSent,
			"email_sent_to": result.EmailSentTo,
		},
	})
	ac.logAPIRequest(c)
	return resp
}

// UpdateStatus moves an application to an explicit target status.
func (ac *ApplicationController) UpdateStatus(c *fiber.Ctx) error {
	var req applicationTypes.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
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

	appID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	change, err := ac.Lifecycle.ChangeStatus(c.Context(), user.ID, appID,
		applicationModel.ApplicationStatus(req.Status), req.Note, constants.ActorUser)
	if err != nil {
		return respondError(c, err)
	}

	result := c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Status changed to %s", change.NewStatus),
		Data: fiber.Map{
			"old_status": change.OldStatus,
			"new_status": change.NewStatus,
		},
	})
	ac.logAPIRequest(c)
	return result
}
