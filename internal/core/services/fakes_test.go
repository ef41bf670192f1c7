package services

import (
	"context"
	"sort"

	"metta-coop-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repositories backing the service tests.

type fakeMemberRepo struct {
	members   map[uint]*models.Member
	nextID    uint
	updateErr error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uint]*models.Member), nextID: 1}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *models.Member) error {
	member.ID = r.nextID
	r.nextID++
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uint) (*models.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *fakeMemberRepo) GetByUserID(_ context.Context, userID uint) (*models.Member, error) {
	for _, member := range r.members {
		if member.UserID == userID {
			clone := *member
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMemberRepo) GetByPhone(_ context.Context, phone string) (*models.Member, error) {
	for _, member := range r.members {
		if member.Phone == phone {
			clone := *member
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMemberRepo) Update(_ context.Context, member *models.Member) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *member
	r.members[member.ID] = &clone
	return nil
}

func (r *fakeMemberRepo) List(_ context.Context) ([]*models.Member, error) {
	ids := make([]uint, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	members := make([]*models.Member, 0, len(ids))
	for _, id := range ids {
		clone := *r.members[id]
		members = append(members, &clone)
	}
	return members, nil
}

func (r *fakeMemberRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	for _, member := range r.members {
		if member.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

type fakeTransactionRepo struct {
	entries   []*models.Transaction
	members   *fakeMemberRepo
	nextID    uint
	appendErr error
}

func newFakeTransactionRepo(members *fakeMemberRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{members: members, nextID: 1}
}

func (r *fakeTransactionRepo) Append(_ context.Context, entry *models.Transaction, member *models.Member) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	entry.ID = r.nextID
	r.nextID++
	clone := *entry
	r.entries = append(r.entries, &clone)

	memberClone := *member
	r.members.members[member.ID] = &memberClone
	return nil
}

func (r *fakeTransactionRepo) List(_ context.Context, offset, limit int) ([]*models.Transaction, int64, error) {
	return r.page(r.entries, offset, limit)
}

func (r *fakeTransactionRepo) ListByMember(_ context.Context, memberID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	var matched []*models.Transaction
	for _, entry := range r.entries {
		if entry.MemberID == memberID {
			matched = append(matched, entry)
		}
	}
	return r.page(matched, offset, limit)
}

func (r *fakeTransactionRepo) page(entries []*models.Transaction, offset, limit int) ([]*models.Transaction, int64, error) {
	total := int64(len(entries))
	if offset >= len(entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], total, nil
}

type fakeLoanRepo struct {
	loans  map[uint]*models.Loan
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uint]*models.Loan), nextID: 1}
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	loan.ID = r.nextID
	r.nextID++
	clone := *loan
	r.loans[loan.ID] = &clone
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *loan
	return &clone, nil
}

func (r *fakeLoanRepo) Update(_ context.Context, loan *models.Loan) error {
	if _, ok := r.loans[loan.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *loan
	r.loans[loan.ID] = &clone
	return nil
}

func (r *fakeLoanRepo) List(_ context.Context) ([]*models.Loan, error) {
	ids := make([]uint, 0, len(r.loans))
	for id := range r.loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	loans := make([]*models.Loan, 0, len(ids))
	for _, id := range ids {
		clone := *r.loans[id]
		loans = append(loans, &clone)
	}
	return loans, nil
}

func (r *fakeLoanRepo) ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	all, _ := r.List(ctx)
	var matched []*models.Loan
	for _, loan := range all {
		if loan.MemberID == memberID {
			matched = append(matched, loan)
		}
	}
	return matched, nil
}

type fakeSettingsRepo struct {
	settings models.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: models.Settings{
			ID:               models.SettingsRowID,
			InterestRate:     models.DefaultInterestRate,
			SharePrice:       models.DefaultSharePrice,
			MaxLoanAmount:    models.DefaultMaxLoanAmount,
			LoanInterestRate: models.DefaultLoanInterestRate,
		},
	}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	clone := r.settings
	return &clone, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *models.Settings) error {
	r.settings = *settings
	return nil
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
