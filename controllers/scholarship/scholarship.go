package scholarship

import (
	"fmt"
	"strconv"
	"strings"

	"scholar-track/logger"
	"scholar-track/middleware"
	scholarshipModel "scholar-track/models/scholarship"
	"scholar-track/types"
	scholarshipTypes "scholar-track/types/scholarship"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ScholarshipController handles catalog and bookmark HTTP requests
type ScholarshipController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewScholarshipController creates a new scholarship controller
func NewScholarshipController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ScholarshipController {
	return &ScholarshipController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists active scholarships with optional search and paging.
func (sc *ScholarshipController) Index(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}

	q := sc.DB.Model(&scholarshipModel.Scholarship{}).
		Where("is_active = ?", true).
		Where("deleted_at IS NULL")

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if level := c.Query("academic_level"); level != "" {
		q = q.Where("academic_level = ?", level)
	}
	if country := c.Query("host_country"); country != "" {
		q = q.Where("host_country = ?", country)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		logger.Error("Failed to count scholarships", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var scholarships []scholarshipModel.Scholarship
	err := q.Preload("Provider").
		Order("deadline ASC NULLS LAST").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&scholarships).Error
	if err != nil {
		logger.Error("Failed to list scholarships", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Scholarships retrieved successfully",
		Data: fiber.Map{
			"scholarships": scholarships,
			"total":        total,
			"page":         page,
			"per_page":     perPage,
		},
	})
}

// Show returns one scholarship by slug or numeric id.
func (sc *ScholarshipController) Show(c *fiber.Ctx) error {
	param := c.Params("slug")

	var scholarship scholarshipModel.Scholarship
	q := sc.DB.Preload("Provider").Where("deleted_at IS NULL")
	if id, err := strconv.ParseUint(param, 10, 32); err == nil {
		q = q.Where("id = ?", uint(id))
	} else {
		q = q.Where("slug = ?", param)
	}

	if err := q.First(&scholarship).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Scholarship not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load scholarship", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Scholarship retrieved successfully",
		Data:    scholarship,
	})
}

// Save bookmarks a scholarship for the authenticated user.
func (sc *ScholarshipController) Save(c *fiber.Ctx) error {
	var req scholarshipTypes.SaveScholarshipRequest
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

	var scholarship scholarshipModel.Scholarship
	err = sc.DB.Where("id = ? AND is_active = ? AND deleted_at IS NULL", req.ScholarshipID, true).
		First(&scholarship).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Scholarship not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to load scholarship", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var existing scholarshipModel.SavedScholarship
	err = sc.DB.Where("user_id = ? AND scholarship_id = ?", user.ID, req.ScholarshipID).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Scholarship already saved",
			Data:    existing,
		})
	} else if err != gorm.ErrRecordNotFound {
		logger.Error("Failed to check saved scholarship", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	saved := scholarshipModel.SavedScholarship{
		UserID:        user.ID,
		ScholarshipID: req.ScholarshipID,
	}
	if req.Notes != "" {
		saved.Notes = &req.Notes
	}
	if err := sc.DB.Create(&saved).Error; err != nil {
		logger.Error("Failed to save scholarship", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save scholarship",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Scholarship %d saved by user %d", req.ScholarshipID, user.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Scholarship saved successfully",
		Data:    saved,
	})
}

// Unsave removes a bookmark.
func (sc *ScholarshipController) Unsave(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	scholarshipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || scholarshipID == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "invalid scholarship id",
			Data:    nil,
		})
	}

	res := sc.DB.Where("user_id = ? AND scholarship_id = ?", user.ID, uint(scholarshipID)).
		Delete(&scholarshipModel.SavedScholarship{})
	if res.Error != nil {
		logger.Error("Failed to remove saved scholarship", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Saved scholarship not found",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Scholarship removed from saved list",
		Data:    nil,
	})
}

// Saved lists the authenticated user's bookmarked scholarships.
func (sc *ScholarshipController) Saved(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
			Data:    nil,
		})
	}

	var saved []scholarshipModel.SavedScholarship
	err = sc.DB.Preload("Scholarship").Preload("Scholarship.Provider").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		logger.Error("Failed to list saved scholarships", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Saved scholarships retrieved successfully",
		Data:    saved,
	})
}
