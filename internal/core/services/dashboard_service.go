package services

import (
	"context"
	"errors"
	"time"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/core/domain"
	"metta-coop-api/internal/pkg/finance"

	"gorm.io/gorm"
)

// DashboardService aggregates figures for the admin and member home screens
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	TotalMembers  int64 `json:"totalMembers"`
	ActiveMembers int64 `json:"activeMembers"`

	TotalSavings     float64 `json:"totalSavings"`
	TotalShares      int64   `json:"totalShares"`
	TotalLoanBalance float64 `json:"totalLoanBalance"`
	TotalDividend    float64 `json:"totalDividend"`

	PendingLoans   int64   `json:"pendingLoans"`
	ApprovedLoans  int64   `json:"approvedLoans"`
	RejectedLoans  int64   `json:"rejectedLoans"`
	ApprovedAmount float64 `json:"approvedAmount"`

	DepositsThisMonth float64 `json:"depositsThisMonth"`

	RecentTransactions []*models.Transaction `json:"recentTransactions"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").Count(&data.TotalMembers)
	s.db.WithContext(ctx).Table("members").Where("is_active = ? AND deleted_at IS NULL", true).Count(&data.ActiveMembers)

	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").
		Select("COALESCE(SUM(savings), 0)").Scan(&data.TotalSavings)
	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").
		Select("COALESCE(SUM(shares), 0)").Scan(&data.TotalShares)
	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").
		Select("COALESCE(SUM(loan_balance), 0)").Scan(&data.TotalLoanBalance)
	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").
		Select("COALESCE(SUM(dividend), 0)").Scan(&data.TotalDividend)

	s.db.WithContext(ctx).Table("loans").
		Where("status = ? AND deleted_at IS NULL", models.LoanStatusPending).Count(&data.PendingLoans)
	s.db.WithContext(ctx).Table("loans").
		Where("status = ? AND deleted_at IS NULL", models.LoanStatusApproved).Count(&data.ApprovedLoans)
	s.db.WithContext(ctx).Table("loans").
		Where("status = ? AND deleted_at IS NULL", models.LoanStatusRejected).Count(&data.RejectedLoans)
	s.db.WithContext(ctx).Table("loans").
		Where("status = ? AND deleted_at IS NULL", models.LoanStatusApproved).
		Select("COALESCE(SUM(amount), 0)").Scan(&data.ApprovedAmount)

	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("transactions").
		Where("type = ? AND date >= ?", models.TxTypeDeposit, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&data.DepositsThisMonth)

	if err := s.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Limit(10).
		Find(&data.RecentTransactions).Error; err != nil {
		return nil, err
	}
	if data.RecentTransactions == nil {
		data.RecentTransactions = []*models.Transaction{}
	}

	return data, nil
}

// MemberDashboardData represents member home screen data
type MemberDashboardData struct {
	Member *models.Member `json:"member"`

	ShareValue     float64 `json:"shareValue"`
	AnnualInterest float64 `json:"annualInterest"`

	ActiveLoans        []*models.Loan        `json:"activeLoans"`
	RecentTransactions []*models.Transaction `json:"recentTransactions"`
}

// GetMemberDashboard returns a member's home screen data with the
// settings-derived figures.
func (s *DashboardService) GetMemberDashboard(ctx context.Context, memberID uint) (*MemberDashboardData, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	var settings models.Settings
	if err := s.db.WithContext(ctx).First(&settings, models.SettingsRowID).Error; err != nil {
		return nil, err
	}

	data := &MemberDashboardData{
		Member:         &member,
		ShareValue:     finance.ShareValue(member.Shares, settings.SharePrice),
		AnnualInterest: finance.AnnualInterest(member.Savings, settings.InterestRate),
	}

	if err := s.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, models.LoanStatusApproved).
		Order("applied_date DESC").
		Find(&data.ActiveLoans).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("date DESC, id DESC").
		Limit(5).
		Find(&data.RecentTransactions).Error; err != nil {
		return nil, err
	}

	if data.ActiveLoans == nil {
		data.ActiveLoans = []*models.Loan{}
	}
	if data.RecentTransactions == nil {
		data.RecentTransactions = []*models.Transaction{}
	}

	return data, nil
}
