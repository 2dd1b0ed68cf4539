package seeders

import (
	"log"

	userModel "scholar-track/models/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedDemoUsers creates a demo student account for local development.
func SeedDemoUsers(db *gorm.DB) {
	demo := userModel.User{
		Uuid:          uuid.NewString(),
		FirstName:     "Amina",
		LastName:      "Rahman",
		Email:         "amina.rahman@example.com",
		EmailVerified: true,
	}

	var existing userModel.User
	err := db.Where("email = ?", demo.Email).First(&existing).Error
	if err == nil {
		log.Printf("✅ Demo user already present: %s", demo.Email)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("❌ Failed to check demo user: %v", err)
		return
	}

	if err := db.Create(&demo).Error; err != nil {
		log.Printf("❌ Failed to seed demo user: %v", err)
		return
	}

	profile := userModel.StudentProfile{
		UserID:           demo.ID,
		Nationality:      strPtr("Bangladesh"),
		ResidenceCountry: strPtr("Bangladesh"),
		GPA:              strPtr("3.70"),
		GPAScale:         strPtr("4.0"),
		PrimaryField:     strPtr("Computer Science"),
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Printf("❌ Failed to seed demo profile: %v", err)
		return
	}

	log.Printf("✅ Seeded demo user: %s", demo.Email)
}
