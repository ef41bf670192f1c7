package services

import (
	"context"
	"errors"
	"time"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/adapters/persistence/repositories"
	"metta-coop-api/internal/core/domain"
	"metta-coop-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Member service errors
var (
	ErrWeakPassword = errors.New("password too short")
	ErrMissingField = errors.New("name and phone are required")
)

// MemberService manages member records and their login users
type MemberService struct {
	memberRepo repositories.MemberRepository
	userRepo   repositories.UserRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository, userRepo repositories.UserRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

// CreateMemberInput represents admin member creation. The phone doubles as
// the login username.
type CreateMemberInput struct {
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	NID      string    `json:"nid"`
	Photo    string    `json:"photo"`
	JoinDate time.Time `json:"joinDate"`
	Shares   int       `json:"shares"`
	Savings  float64   `json:"savings"`
	Password string    `json:"password"`
	Role     string    `json:"role"`
}

// Create creates a member together with its login user. If a user already
// registered with the phone, the member is linked to it instead.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	if input.Name == "" || input.Phone == "" {
		return nil, ErrMissingField
	}

	exists, err := s.memberRepo.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrPhoneAlreadyExists
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Phone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = nil
	}

	if user == nil {
		if !password.Validate(input.Password) {
			return nil, ErrWeakPassword
		}

		role := input.Role
		if role != models.RoleAdmin {
			role = models.RoleUser
		}

		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}

		user = &models.User{
			Username: input.Phone,
			Password: hashed,
			Role:     role,
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = today()
	}

	member := &models.Member{
		UserID:   user.ID,
		Name:     input.Name,
		Phone:    input.Phone,
		Address:  input.Address,
		NID:      input.NID,
		Photo:    input.Photo,
		JoinDate: joinDate,
		Shares:   input.Shares,
		Savings:  input.Savings,
		IsActive: true,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// UpdateMemberInput represents a partial member update. Only fields that
// are present are applied. Savings, shares and loan balance are not here:
// those move only through ledger transactions. Dividend is the one
// financial field set manually, by the admin profit-distribution workflow.
type UpdateMemberInput struct {
	Name     *string  `json:"name"`
	Phone    *string  `json:"phone"`
	Address  *string  `json:"address"`
	NID      *string  `json:"nid"`
	Photo    *string  `json:"photo"`
	Dividend *float64 `json:"dividend"`
	IsActive *bool    `json:"isActive"`
}

// Update applies a partial member update
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*models.Member, error) {
	member, err := s.getMember(ctx, id)
	if err != nil {
		return nil, err
	}

	phoneChanged := false
	if input.Phone != nil && *input.Phone != member.Phone {
		exists, err := s.memberRepo.ExistsByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrPhoneAlreadyExists
		}

		member.Phone = *input.Phone
		phoneChanged = true
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.NID != nil {
		member.NID = *input.NID
	}
	if input.Photo != nil {
		member.Photo = *input.Photo
	}
	if input.Dividend != nil {
		member.Dividend = *input.Dividend
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	// Sync the login username only once the member row holds the new
	// phone, so a failed member update cannot leave the two diverged.
	if phoneChanged {
		user, err := s.userRepo.GetByID(ctx, member.UserID)
		if err == nil {
			user.Username = member.Phone
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	return s.getMember(ctx, id)
}

// List lists all members in insertion order
func (s *MemberService) List(ctx context.Context) ([]*models.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*models.Member{}
	}
	return members, nil
}

func (s *MemberService) getMember(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}
