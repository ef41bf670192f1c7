package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/adapters/persistence/repositories"
	"metta-coop-api/internal/core/domain"
	"metta-coop-api/internal/pkg/finance"
	"metta-coop-api/internal/pkg/pagination"

	"gorm.io/gorm"
)

// TransactionService is the ledger engine: it records immutable
// transactions and applies the matching balance delta to the member.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
	memberRepo      repositories.MemberRepository
	settingsRepo    repositories.SettingsRepository

	// mu serializes all ledger mutations. The balance update is
	// read-modify-write, so concurrent writers would lose updates.
	mu sync.Mutex
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	memberRepo repositories.MemberRepository,
	settingsRepo repositories.SettingsRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		memberRepo:      memberRepo,
		settingsRepo:    settingsRepo,
	}
}

// RecordInput represents a ledger entry to record
type RecordInput struct {
	MemberID    uint      `json:"memberId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Record validates the input, persists the transaction and applies the
// balance delta to the member. Entry and balance are written atomically.
func (s *TransactionService) Record(ctx context.Context, input *RecordInput) (*models.Transaction, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !models.ValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidTransactionType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = today()
	}

	entry := &models.Transaction{
		MemberID:    member.ID,
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        date,
		Description: input.Description,
	}

	if err := s.applyDelta(ctx, member, entry); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Append(ctx, entry, member); err != nil {
		return nil, err
	}

	return entry, nil
}

// applyDelta mutates the member's balance fields according to the entry
// type. Withdrawals may drive savings negative; loan repayments clamp the
// loan balance at zero. Dividend entries are record-keeping only: the
// member's dividend field is maintained through the admin member update.
func (s *TransactionService) applyDelta(ctx context.Context, member *models.Member, entry *models.Transaction) error {
	switch entry.Type {
	case models.TxTypeDeposit:
		member.Savings += entry.Amount
	case models.TxTypeWithdrawal:
		member.Savings -= entry.Amount
	case models.TxTypeShare:
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return err
		}
		member.Shares += finance.SharesPurchased(entry.Amount, settings.SharePrice)
	case models.TxTypeLoanDisbursement:
		member.LoanBalance += entry.Amount
	case models.TxTypeLoanRepayment:
		member.LoanBalance = math.Max(0, member.LoanBalance-entry.Amount)
	case models.TxTypeDividend:
		// balance no-op
	}
	return nil
}

// ListOutput represents a page of ledger entries
type ListOutput struct {
	Transactions []*models.Transaction `json:"transactions"`
	Meta         *pagination.Meta      `json:"meta"`
}

// List lists transactions, newest date first, optionally for one member
func (s *TransactionService) List(ctx context.Context, memberID *uint, params *pagination.Params) (*ListOutput, error) {
	var (
		transactions []*models.Transaction
		total        int64
		err          error
	)

	if memberID != nil {
		transactions, total, err = s.transactionRepo.ListByMember(ctx, *memberID, params.Offset, params.Limit)
	} else {
		transactions, total, err = s.transactionRepo.List(ctx, params.Offset, params.Limit)
	}
	if err != nil {
		return nil, err
	}

	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	return &ListOutput{
		Transactions: transactions,
		Meta:         pagination.GetMeta(params, total),
	}, nil
}

// today returns the current date truncated to midnight UTC, matching the
// date-only columns.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
