package services

import (
	"context"
	"errors"
	"testing"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loanFixture struct {
	svc             *LoanService
	memberRepo      *fakeMemberRepo
	loanRepo        *fakeLoanRepo
	transactionRepo *fakeTransactionRepo
	member          *models.Member
}

func newLoanFixture(t *testing.T) *loanFixture {
	t.Helper()

	memberRepo := newFakeMemberRepo()
	transactionRepo := newFakeTransactionRepo(memberRepo)
	settingsRepo := newFakeSettingsRepo()
	loanRepo := newFakeLoanRepo()

	member := &models.Member{
		Name:     "Rahim Uddin",
		Phone:    "01711111111",
		Savings:  15000,
		IsActive: true,
	}
	require.NoError(t, memberRepo.Create(context.Background(), member))

	transactionService := NewTransactionService(transactionRepo, memberRepo, settingsRepo)
	svc := NewLoanService(loanRepo, memberRepo, settingsRepo, transactionService)

	return &loanFixture{
		svc:             svc,
		memberRepo:      memberRepo,
		loanRepo:        loanRepo,
		transactionRepo: transactionRepo,
		member:          member,
	}
}

func TestLoanServiceApply(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.svc.Apply(context.Background(), &ApplyInput{
		MemberID: f.member.ID,
		Amount:   50000,
		Purpose:  "Shop renovation",
		Duration: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusPending, loan.Status)
	assert.False(t, loan.AppliedDate.IsZero())
	assert.Nil(t, loan.ApprovedDate)
	assert.Nil(t, loan.MonthlyInstallment)

	// Applying never touches balances
	member, err := f.memberRepo.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), member.LoanBalance)
}

func TestLoanServiceApplyValidation(t *testing.T) {
	f := newLoanFixture(t)

	tests := []struct {
		name    string
		input   *ApplyInput
		wantErr error
	}{
		{
			name:    "zero amount",
			input:   &ApplyInput{MemberID: f.member.ID, Amount: 0, Duration: 12},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "over society limit",
			input:   &ApplyInput{MemberID: f.member.ID, Amount: 600000, Duration: 12},
			wantErr: domain.ErrLoanOverLimit,
		},
		{
			name:    "zero duration",
			input:   &ApplyInput{MemberID: f.member.ID, Amount: 50000, Duration: 0},
			wantErr: domain.ErrInvalidDuration,
		},
		{
			name:    "duration over bound",
			input:   &ApplyInput{MemberID: f.member.ID, Amount: 50000, Duration: 61},
			wantErr: domain.ErrInvalidDuration,
		},
		{
			name:    "missing member",
			input:   &ApplyInput{MemberID: 999, Amount: 50000, Duration: 12},
			wantErr: domain.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Apply(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoanServiceApprove(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.svc.Apply(context.Background(), &ApplyInput{
		MemberID: f.member.ID,
		Amount:   50000,
		Purpose:  "Shop renovation",
		Duration: 12,
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(context.Background(), loan.ID)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedDate)
	require.NotNil(t, approved.MonthlyInstallment)
	// ceil(50000 * 1.12 / 12)
	assert.Equal(t, float64(4667), *approved.MonthlyInstallment)

	// Disbursement flows through the ledger exactly once
	member, err := f.memberRepo.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), member.LoanBalance)

	require.Len(t, f.transactionRepo.entries, 1)
	entry := f.transactionRepo.entries[0]
	assert.Equal(t, models.TxTypeLoanDisbursement, entry.Type)
	assert.Equal(t, float64(50000), entry.Amount)
	assert.Contains(t, entry.Description, "Shop renovation")
}

func TestLoanServiceApproveIsTerminal(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.svc.Apply(context.Background(), &ApplyInput{
		MemberID: f.member.ID, Amount: 50000, Duration: 12,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), loan.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.svc.Reject(context.Background(), loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)

	// No second disbursement
	member, err := f.memberRepo.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), member.LoanBalance)
	assert.Len(t, f.transactionRepo.entries, 1)
}

func TestLoanServiceApproveRevertsWhenDisbursementFails(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.svc.Apply(context.Background(), &ApplyInput{
		MemberID: f.member.ID, Amount: 50000, Duration: 12,
	})
	require.NoError(t, err)

	f.transactionRepo.appendErr = errors.New("insert failed")

	_, err = f.svc.Approve(context.Background(), loan.ID)
	require.Error(t, err)

	// The application goes back to pending, with nothing disbursed
	stored, err := f.loanRepo.GetByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusPending, stored.Status)
	assert.Nil(t, stored.ApprovedDate)
	assert.Nil(t, stored.MonthlyInstallment)

	member, err := f.memberRepo.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), member.LoanBalance)
	assert.Empty(t, f.transactionRepo.entries)

	// The decision can be retried once the ledger recovers
	f.transactionRepo.appendErr = nil

	approved, err := f.svc.Approve(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, approved.Status)

	member, err = f.memberRepo.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), member.LoanBalance)
	assert.Len(t, f.transactionRepo.entries, 1)
}

func TestLoanServiceReject(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.svc.Apply(context.Background(), &ApplyInput{
		MemberID: f.member.ID, Amount: 50000, Duration: 12,
	})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(context.Background(), loan.ID)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedDate)
	assert.Nil(t, rejected.MonthlyInstallment)

	member, err := f.memberRepo.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), member.LoanBalance)
	assert.Empty(t, f.transactionRepo.entries)
}

func TestLoanServiceDecideMissingLoan(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.svc.Approve(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)

	_, err = f.svc.Reject(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanServiceEstimate(t *testing.T) {
	f := newLoanFixture(t)

	installment, err := f.svc.Estimate(context.Background(), 50000, 12)
	require.NoError(t, err)
	assert.Equal(t, float64(4667), installment)

	_, err = f.svc.Estimate(context.Background(), 0, 12)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.Estimate(context.Background(), 50000, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestLoanServiceList(t *testing.T) {
	f := newLoanFixture(t)

	other := &models.Member{Name: "Karima Begum", Phone: "01722222222", IsActive: true}
	require.NoError(t, f.memberRepo.Create(context.Background(), other))

	_, err := f.svc.Apply(context.Background(), &ApplyInput{MemberID: f.member.ID, Amount: 10000, Duration: 6})
	require.NoError(t, err)
	_, err = f.svc.Apply(context.Background(), &ApplyInput{MemberID: other.ID, Amount: 20000, Duration: 6})
	require.NoError(t, err)

	all, err := f.svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.List(context.Background(), &f.member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.member.ID, mine[0].MemberID)
}
