package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents users table. Username is the member's phone number.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserResponse DTO
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Cooperative Tables
// ============================================================

// Member represents members table: identity plus financial snapshot.
// Balance fields are written only by the transaction processor and by
// explicit admin patches; LoanBalance is never negative.
type Member struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"userId"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Phone       string         `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Address     string         `gorm:"size:255" json:"address"`
	NID         string         `gorm:"column:nid;size:30" json:"nid"`
	Photo       string         `gorm:"size:255" json:"photo"`
	JoinDate    time.Time      `gorm:"type:date;not null" json:"joinDate"`
	Shares      int            `gorm:"not null;default:0" json:"shares"`
	Savings     float64        `gorm:"type:decimal(15,2);not null;default:0" json:"savings"`
	LoanBalance float64        `gorm:"type:decimal(15,2);not null;default:0" json:"loanBalance"`
	Dividend    float64        `gorm:"type:decimal(15,2);not null;default:0" json:"dividend"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// Transaction represents transactions table. Entries are append-only:
// created once by the transaction processor, never updated or deleted.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"index;not null" json:"memberId"`
	Type        string    `gorm:"size:30;not null" json:"type"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Transaction types
const (
	TxTypeDeposit          = "deposit"
	TxTypeWithdrawal       = "withdrawal"
	TxTypeShare            = "share"
	TxTypeLoanDisbursement = "loan_disbursement"
	TxTypeLoanRepayment    = "loan_repayment"
	TxTypeDividend         = "dividend"
)

// ValidTransactionType reports whether t is a known ledger entry type.
func ValidTransactionType(t string) bool {
	switch t {
	case TxTypeDeposit, TxTypeWithdrawal, TxTypeShare,
		TxTypeLoanDisbursement, TxTypeLoanRepayment, TxTypeDividend:
		return true
	}
	return false
}

// Loan represents loans table
type Loan struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	MemberID           uint           `gorm:"index;not null" json:"memberId"`
	Amount             float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Purpose            string         `gorm:"size:255" json:"purpose"`
	Duration           int            `gorm:"not null" json:"duration"`
	Status             string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	AppliedDate        time.Time      `gorm:"type:date;not null" json:"appliedDate"`
	ApprovedDate       *time.Time     `gorm:"type:date" json:"approvedDate"`
	MonthlyInstallment *float64       `gorm:"type:decimal(15,2)" json:"monthlyInstallment"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// Loan statuses. approved and rejected are terminal.
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
)

// Notice represents notices table
type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	IsUrgent  bool      `gorm:"default:false" json:"isUrgent"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notice) TableName() string {
	return "notices"
}

// Event represents events table
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Time        string    `gorm:"size:20" json:"time"`
	Venue       string    `gorm:"size:200" json:"venue"`
	Type        string    `gorm:"size:20;not null;default:'meeting'" json:"type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Event) TableName() string {
	return "events"
}

// Event types
const (
	EventTypeMeeting = "meeting"
	EventTypeEvent   = "event"
)

// Settings represents the single-row settings table. The row with
// SettingsRowID is created by the seeder and only ever updated in place.
type Settings struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	InterestRate     float64   `gorm:"type:decimal(5,2);not null" json:"interestRate"`
	SharePrice       float64   `gorm:"type:decimal(15,2);not null" json:"sharePrice"`
	MaxLoanAmount    float64   `gorm:"type:decimal(15,2);not null" json:"maxLoanAmount"`
	LoanInterestRate float64   `gorm:"type:decimal(5,2);not null" json:"loanInterestRate"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Settings) TableName() string {
	return "settings"
}

// SettingsRowID is the primary key of the only settings row.
const SettingsRowID uint = 1

// Default settings values
const (
	DefaultInterestRate     = 6
	DefaultSharePrice       = 100
	DefaultMaxLoanAmount    = 500000
	DefaultLoanInterestRate = 12
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Member{},
		&Transaction{},
		&Loan{},
		&Notice{},
		&Event{},
		&Settings{},
	)
}
