package config

import (
	"log"
	"time"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSettings(); err != nil {
		return err
	}
	if err := s.seedAdmin(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSettings creates the society settings row if it does not exist
func (s *Seeder) seedSettings() error {
	var count int64
	s.db.Model(&models.Settings{}).Where("id = ?", models.SettingsRowID).Count(&count)
	if count > 0 {
		return nil
	}

	settings := &models.Settings{
		ID:               models.SettingsRowID,
		InterestRate:     models.DefaultInterestRate,
		SharePrice:       models.DefaultSharePrice,
		MaxLoanAmount:    models.DefaultMaxLoanAmount,
		LoanInterestRate: models.DefaultLoanInterestRate,
	}
	if err := s.db.Create(settings).Error; err != nil {
		return err
	}

	log.Println("✅ Default settings created")
	return nil
}

// seedAdmin seeds the bootstrap admin account with its member record.
// For development only, change the password before going live.
func (s *Seeder) seedAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Username: "01700000000",
			Password: hashedPassword,
			Role:     "admin",
			IsActive: true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		member := &models.Member{
			UserID:   admin.ID,
			Name:     "Society Admin",
			Phone:    "01700000000",
			Address:  "Head Office",
			JoinDate: time.Now(),
			IsActive: true,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		log.Printf("✅ Admin user created: %s", admin.Username)
		return nil
	})
}
