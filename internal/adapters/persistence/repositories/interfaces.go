package repositories

import (
	"context"

	"metta-coop-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Member, error)
	GetByPhone(ctx context.Context, phone string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	List(ctx context.Context) ([]*models.Member, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// TransactionRepository defines the append-only ledger repository.
// There is deliberately no update or delete operation.
type TransactionRepository interface {
	// Append persists the ledger entry and the member's updated balance
	// in one database transaction.
	Append(ctx context.Context, entry *models.Transaction, member *models.Member) error
	List(ctx context.Context, offset, limit int) ([]*models.Transaction, int64, error)
	ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*models.Transaction, int64, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	List(ctx context.Context) ([]*models.Loan, error)
	ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error)
}

// NoticeRepository defines notice repository interface
type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	List(ctx context.Context) ([]*models.Notice, error)
}

// EventRepository defines event repository interface
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context) ([]*models.Event, error)
}

// SettingsRepository defines settings repository interface
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}
