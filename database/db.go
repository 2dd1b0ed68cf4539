package database

import (
	"fmt"
	"os"

	"scholar-track/logger"
	"scholar-track/models/application"
	"scholar-track/models/log"
	"scholar-track/models/notification"
	"scholar-track/models/scholarship"
	"scholar-track/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&user.StudentProfile{},
		&scholarship.Provider{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&scholarship.Scholarship{},
		&scholarship.SavedScholarship{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Application lifecycle models
	stage3Models := []interface{}{
		&application.Application{},
		&application.TimelineEntry{},
		&notification.Notification{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create user uuid index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	// Scholarship indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_scholarships_deadline ON scholarships(deadline)").Error; err != nil {
		return fmt.Errorf("failed to create scholarship deadline index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_scholarships_is_active ON scholarships(is_active)").Error; err != nil {
		return fmt.Errorf("failed to create scholarship is_active index: %w", err)
	}

	// Application indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status)").Error; err != nil {
		return fmt.Errorf("failed to create application status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_applications_user_id ON applications(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create application user_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_applications_updated_at ON applications(updated_at)").Error; err != nil {
		return fmt.Errorf("failed to create application updated_at index: %w", err)
	}

	// Timeline indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_application_timeline_application_id ON application_timeline(application_id)").Error; err != nil {
		return fmt.Errorf("failed to create timeline application_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_application_timeline_created_at ON application_timeline(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create timeline created_at index: %w", err)
	}

	// Notification indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, is_read)").Error; err != nil {
		return fmt.Errorf("failed to create notification user_read index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
