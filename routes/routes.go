package routes

import (
	"os"

	applicationController "scholar-track/controllers/application"
	dashboardController "scholar-track/controllers/dashboard"
	notificationController "scholar-track/controllers/notification"
	scholarshipController "scholar-track/controllers/scholarship"
	httpServices "scholar-track/httpServices/mailer"
	"scholar-track/logger"
	"scholar-track/middleware"
	applicationService "scholar-track/services/application"
	"scholar-track/services/notifier"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mailClient := httpServices.NewClient(os.Getenv("MAIL_RELAY_URL"))
	asyncLogger := logger.NewAsyncLogger(db)

	notifierService := notifier.NewNotifier(db)
	lifecycle := applicationService.NewLifecycle(db, notifierService, mailClient)

	applications := applicationController.NewApplicationController(db, asyncLogger, lifecycle)
	scholarships := scholarshipController.NewScholarshipController(db, asyncLogger)
	notifications := notificationController.NewNotificationController(db, asyncLogger)
	dashboard := dashboardController.NewDashboardController(db, asyncLogger, lifecycle)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Get("/scholarships", scholarships.Index)
	api.Get("/scholarships/:slug", scholarships.Show)

	/*=============================================================================
	| Application Routes
	===============================================================================*/
	applicationGroup := api.Group("/applications").Use(middleware.Protected())
	applicationGroup.Get("/", applications.Index)
	applicationGroup.Post("/", applications.Store)
	applicationGroup.Get("/:id", applications.Show)
	applicationGroup.Put("/:id", applications.Update)
	applicationGroup.Post("/:id/submit", applications.Submit)
	applicationGroup.Post("/:id/status", applications.UpdateStatus)

	/*=============================================================================
	| Saved Scholarship Routes
	===============================================================================*/
	savedGroup := api.Group("/saved-scholarships").Use(middleware.Protected())
	savedGroup.Get("/", scholarships.Saved)
	savedGroup.Post("/", scholarships.Save)
	savedGroup.Delete("/:id", scholarships.Unsave)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	notificationGroup := api.Group("/notifications").Use(middleware.Protected())
	notificationGroup.Get("/", notifications.Index)
	notificationGroup.Post("/mark-read", notifications.MarkRead)
	notificationGroup.Post("/mark-all-read", notifications.MarkAllRead)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboardGroup := api.Group("/dashboard").Use(middleware.Protected())
	dashboardGroup.Get("/stats", dashboard.Stats)
}
