package seeders

import (
	"log"
	"time"

	scholarshipModel "scholar-track/models/scholarship"

	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func timePtr(t time.Time) *time.Time { return &t }

// SeedScholarships loads the starter scholarship catalog. Existing slugs are
// left untouched so reseeding is safe.
func SeedScholarships(db *gorm.DB) {
	log.Printf("🔍 Checking scholarship catalog data integrity...")

	providers := []scholarshipModel.Provider{
		{Name: "Fulbright Commission", Type: strPtr("government"), WebsiteURL: strPtr("https://foreign.fulbrightonline.org")},
		{Name: "DAAD", Type: strPtr("government"), WebsiteURL: strPtr("https://www.daad.de/en/")},
		{Name: "Chevening Secretariat", Type: strPtr("government"), WebsiteURL: strPtr("https://www.chevening.org")},
		{Name: "Erasmus+ Programme", Type: strPtr("intergovernmental"), WebsiteURL: strPtr("https://erasmus-plus.ec.europa.eu")},
	}

	providerIDs := make(map[string]uint, len(providers))
	for _, p := range providers {
		var existing scholarshipModel.Provider
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			providerIDs[p.Name] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("❌ Failed to check provider %s: %v", p.Name, err)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Printf("❌ Failed to seed provider %s: %v", p.Name, err)
			continue
		}
		providerIDs[p.Name] = p.ID
	}

	nextYear := time.Now().AddDate(1, 0, 0)

	scholarships := []scholarshipModel.Scholarship{
		{
			Title:          "Fulbright Foreign Student Program",
			Slug:           "fulbright-foreign-student-program",
			Description:    strPtr("Graduate study and research in the United States for international students."),
			AcademicLevel:  strPtr("masters"),
			AwardType:      strPtr("full"),
			AwardCurrency:  strPtr("USD"),
			HostCountry:    strPtr("United States"),
			Deadline:       timePtr(time.Date(nextYear.Year(), 2, 28, 0, 0, 0, 0, time.UTC)),
			DeadlineType:   "fixed",
			ApplicationURL: strPtr("https://foreign.fulbrightonline.org/apply"),
		},
		{
			Title:          "DAAD Study Scholarship",
			Slug:           "daad-study-scholarship",
			Description:    strPtr("Postgraduate study at a German university across all disciplines."),
			AcademicLevel:  strPtr("masters"),
			AwardType:      strPtr("partial"),
			AwardAmountMin: int64Ptr(934),
			AwardCurrency:  strPtr("EUR"),
			HostCountry:    strPtr("Germany"),
			Deadline:       timePtr(time.Date(nextYear.Year(), 10, 15, 0, 0, 0, 0, time.UTC)),
			DeadlineType:   "fixed",
			ApplicationURL: strPtr("https://www.daad.de/en/study-and-research-in-germany/scholarships/"),
		},
		{
			Title:          "Chevening Scholarship",
			Slug:           "chevening-scholarship",
			Description:    strPtr("Fully funded one year master's degree in the United Kingdom."),
			AcademicLevel:  strPtr("masters"),
			AwardType:      strPtr("full"),
			AwardCurrency:  strPtr("GBP"),
			HostCountry:    strPtr("United Kingdom"),
			Deadline:       timePtr(time.Date(nextYear.Year(), 11, 7, 0, 0, 0, 0, time.UTC)),
			DeadlineType:   "fixed",
			ApplicationURL: strPtr("https://www.chevening.org/apply/"),
		},
		{
			Title:         "Erasmus Mundus Joint Masters",
			Slug:          "erasmus-mundus-joint-masters",
			Description:   strPtr("Integrated study programmes delivered by consortia of European universities."),
			AcademicLevel: strPtr("masters"),
			AwardType:     strPtr("full"),
			AwardCurrency: strPtr("EUR"),
			HostCountry:   strPtr("European Union"),
			DeadlineType:  "rolling",
		},
	}

	providerBySlug := map[string]string{
		"fulbright-foreign-student-program": "Fulbright Commission",
		"daad-study-scholarship":            "DAAD",
		"chevening-scholarship":             "Chevening Secretariat",
		"erasmus-mundus-joint-masters":      "Erasmus+ Programme",
	}

	successCount := 0
	skippedCount := 0

	for _, s := range scholarships {
		var existing scholarshipModel.Scholarship
		err := db.Where("slug = ?", s.Slug).First(&existing).Error
		if err == nil {
			skippedCount++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("❌ Failed to check scholarship %s: %v", s.Slug, err)
			continue
		}

		if providerName, ok := providerBySlug[s.Slug]; ok {
			if id, ok := providerIDs[providerName]; ok {
				s.ProviderID = &id
			}
		}
		s.IsActive = true

		if err := db.Create(&s).Error; err != nil {
			log.Printf("❌ Failed to seed scholarship %s: %v", s.Slug, err)
		} else {
			log.Printf("✅ Added: %s", s.Title)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Inserted %d scholarships, %d already present", successCount, skippedCount)
}
