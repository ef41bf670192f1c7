package services

import (
	"context"
	"log"
	"time"

	"metta-coop-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	db               *gorm.DB
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB, refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		cron:             cron.New(),
		db:               db,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers the scheduled jobs and starts the scheduler
func (s *CronService) Start() error {
	// Purge expired and revoked refresh tokens shortly after midnight
	if _, err := s.cron.AddFunc("30 0 * * *", s.purgeRefreshTokens); err != nil {
		return err
	}

	// Nightly ledger summary for the server log
	if _, err := s.cron.AddFunc("0 1 * * *", s.logLedgerSummary); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Cron scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron scheduler stopped")
}

func (s *CronService) purgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Failed to purge refresh tokens: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🗑️ Purged %d expired refresh tokens", deleted)
	}
}

func (s *CronService) logLedgerSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var txCount int64
	var totalSavings float64
	s.db.WithContext(ctx).Table("transactions").
		Where("date = ?", time.Now().Format("2006-01-02")).Count(&txCount)
	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").
		Select("COALESCE(SUM(savings), 0)").Scan(&totalSavings)

	log.Printf("📅 Daily ledger summary: %d transactions today, total savings %.2f", txCount, totalSavings)
}
