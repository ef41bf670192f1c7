package services

import (
	"context"
	"errors"
	"fmt"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/adapters/persistence/repositories"
	"metta-coop-api/internal/core/domain"
	"metta-coop-api/internal/pkg/finance"

	"gorm.io/gorm"
)

// Loan duration bounds in months
const (
	MinLoanDuration = 1
	MaxLoanDuration = 60
)

// LoanService manages the loan lifecycle: pending -> approved | rejected,
// both terminal. Approval disburses through the transaction service, which
// is the only writer of the member's loan balance.
type LoanService struct {
	loanRepo           repositories.LoanRepository
	memberRepo         repositories.MemberRepository
	settingsRepo       repositories.SettingsRepository
	transactionService *TransactionService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	memberRepo repositories.MemberRepository,
	settingsRepo repositories.SettingsRepository,
	transactionService *TransactionService,
) *LoanService {
	return &LoanService{
		loanRepo:           loanRepo,
		memberRepo:         memberRepo,
		settingsRepo:       settingsRepo,
		transactionService: transactionService,
	}
}

// ApplyInput represents a loan application
type ApplyInput struct {
	MemberID uint    `json:"memberId"`
	Amount   float64 `json:"amount"`
	Purpose  string  `json:"purpose"`
	Duration int     `json:"duration"`
}

// Apply creates a pending loan application
func (s *LoanService) Apply(ctx context.Context, input *ApplyInput) (*models.Loan, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.Duration < MinLoanDuration || input.Duration > MaxLoanDuration {
		return nil, domain.ErrInvalidDuration
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if input.Amount > settings.MaxLoanAmount {
		return nil, domain.ErrLoanOverLimit
	}

	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	loan := &models.Loan{
		MemberID:    input.MemberID,
		Amount:      input.Amount,
		Purpose:     input.Purpose,
		Duration:    input.Duration,
		Status:      models.LoanStatusPending,
		AppliedDate: today(),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// Approve approves a pending loan: sets the approval date, computes the
// monthly installment and records the disbursement transaction. The
// disbursement is what increments the member's loan balance; the loan
// update itself never touches balances.
func (s *LoanService) Approve(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, domain.ErrLoanNotPending
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := today()
	installment := finance.EstimatedInstallment(loan.Amount, settings.LoanInterestRate, loan.Duration)

	loan.Status = models.LoanStatusApproved
	loan.ApprovedDate = &now
	loan.MonthlyInstallment = &installment

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	_, err = s.transactionService.Record(ctx, &RecordInput{
		MemberID:    loan.MemberID,
		Type:        models.TxTypeLoanDisbursement,
		Amount:      loan.Amount,
		Date:        now,
		Description: fmt.Sprintf("Loan disbursement - %s", loan.Purpose),
	})
	if err != nil {
		// Put the application back to pending so the decision can be
		// retried; an approved loan without its disbursement would be
		// stuck behind the pending-only guard.
		loan.Status = models.LoanStatusPending
		loan.ApprovedDate = nil
		loan.MonthlyInstallment = nil
		if revertErr := s.loanRepo.Update(ctx, loan); revertErr != nil {
			return nil, fmt.Errorf("disbursement failed: %w (revert failed: %v)", err, revertErr)
		}
		return nil, err
	}

	return loan, nil
}

// Reject rejects a pending loan. No balance side effects.
func (s *LoanService) Reject(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusPending {
		return nil, domain.ErrLoanNotPending
	}

	loan.Status = models.LoanStatusRejected

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, loanID uint) (*models.Loan, error) {
	return s.getLoan(ctx, loanID)
}

// List lists loans, optionally for one member
func (s *LoanService) List(ctx context.Context, memberID *uint) ([]*models.Loan, error) {
	var (
		loans []*models.Loan
		err   error
	)

	if memberID != nil {
		loans, err = s.loanRepo.ListByMember(ctx, *memberID)
	} else {
		loans, err = s.loanRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if loans == nil {
		loans = []*models.Loan{}
	}
	return loans, nil
}

// Estimate returns the monthly installment for a prospective loan at the
// current loan interest rate.
func (s *LoanService) Estimate(ctx context.Context, amount float64, duration int) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if duration < MinLoanDuration || duration > MaxLoanDuration {
		return 0, domain.ErrInvalidDuration
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	return finance.EstimatedInstallment(amount, settings.LoanInterestRate, duration), nil
}

func (s *LoanService) getLoan(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}
