package services

import (
	"context"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/adapters/persistence/repositories"
	"metta-coop-api/internal/core/domain"
)

// SettingsService manages the single global settings row
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents a partial settings update. Only fields
// that are present are applied.
type UpdateSettingsInput struct {
	InterestRate     *float64 `json:"interestRate"`
	SharePrice       *float64 `json:"sharePrice"`
	MaxLoanAmount    *float64 `json:"maxLoanAmount"`
	LoanInterestRate *float64 `json:"loanInterestRate"`
}

// Update applies a partial settings update. Rates may be zero but not
// negative; share price and the loan ceiling must stay positive.
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.InterestRate != nil {
		if *input.InterestRate < 0 {
			return nil, domain.ErrValidation
		}
		settings.InterestRate = *input.InterestRate
	}
	if input.SharePrice != nil {
		if *input.SharePrice <= 0 {
			return nil, domain.ErrValidation
		}
		settings.SharePrice = *input.SharePrice
	}
	if input.MaxLoanAmount != nil {
		if *input.MaxLoanAmount <= 0 {
			return nil, domain.ErrValidation
		}
		settings.MaxLoanAmount = *input.MaxLoanAmount
	}
	if input.LoanInterestRate != nil {
		if *input.LoanInterestRate < 0 {
			return nil, domain.ErrValidation
		}
		settings.LoanInterestRate = *input.LoanInterestRate
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
