package repositories

import (
	"context"

	"metta-coop-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Append persists the ledger entry and the member's updated balance in one
// database transaction, so no partial ledger state is ever visible.
func (r *transactionRepository) Append(ctx context.Context, entry *models.Transaction, member *models.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Save(member).Error
	})
}

// List lists all transactions, newest date first
func (r *transactionRepository) List(ctx context.Context, offset, limit int) ([]*models.Transaction, int64, error) {
	var transactions []*models.Transaction
	var total int64

	r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error

	return transactions, total, err
}

// ListByMember lists a member's transactions, newest date first
func (r *transactionRepository) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	var transactions []*models.Transaction
	var total int64

	r.db.WithContext(ctx).Model(&models.Transaction{}).Where("member_id = ?", memberID).Count(&total)

	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error

	return transactions, total, err
}
