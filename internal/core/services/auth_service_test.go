package services

import (
	"context"
	"testing"
	"time"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/config"
	"metta-coop-api/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.tokens[token.TokenHash] = &clone
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *token
	return &clone, nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	for hash, token := range r.tokens {
		if token.IsExpired() || token.IsRevoked() {
			delete(r.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeMemberRepo, *fakeRefreshTokenRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	refreshTokenRepo := newFakeRefreshTokenRepo()
	memberRepo := newFakeMemberRepo()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	return NewAuthService(userRepo, refreshTokenRepo, memberRepo, cfg), userRepo, memberRepo, refreshTokenRepo
}

func seedLogin(t *testing.T, userRepo *fakeUserRepo, memberRepo *fakeMemberRepo, phone, pass string) *models.User {
	t.Helper()

	hashed, err := password.Hash(pass)
	require.NoError(t, err)

	user := &models.User{Username: phone, Password: hashed, Role: models.RoleUser, IsActive: true}
	require.NoError(t, userRepo.Create(context.Background(), user))

	member := &models.Member{UserID: user.ID, Name: "Rahim Uddin", Phone: phone, IsActive: true}
	require.NoError(t, memberRepo.Create(context.Background(), member))

	return user
}

func TestAuthServiceRegister(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Phone:    "01711111111",
		Password: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "01711111111", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Phone:    "01711111111",
		Password: "1234",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, userRepo, memberRepo, _ := newAuthFixture(t)
	seedLogin(t, userRepo, memberRepo, "01711111111", "1234")

	result, err := svc.Login(context.Background(), "01711111111", "1234")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.Member)
	assert.Equal(t, "Rahim Uddin", result.Member.Name)

	_, err = svc.Login(context.Background(), "01711111111", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "01799999999", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginInactive(t *testing.T) {
	svc, userRepo, memberRepo, _ := newAuthFixture(t)
	user := seedLogin(t, userRepo, memberRepo, "01711111111", "1234")

	user.IsActive = false
	require.NoError(t, userRepo.Update(context.Background(), user))

	_, err := svc.Login(context.Background(), "01711111111", "1234")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthServiceRefreshRotation(t *testing.T) {
	svc, userRepo, memberRepo, _ := newAuthFixture(t)
	seedLogin(t, userRepo, memberRepo, "01711111111", "1234")

	login, err := svc.Login(context.Background(), "01711111111", "1234")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthServiceRefreshInvalidToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, userRepo, memberRepo, _ := newAuthFixture(t)
	seedLogin(t, userRepo, memberRepo, "01711111111", "1234")

	login, err := svc.Login(context.Background(), "01711111111", "1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthServiceLogoutAll(t *testing.T) {
	svc, userRepo, memberRepo, _ := newAuthFixture(t)
	user := seedLogin(t, userRepo, memberRepo, "01711111111", "1234")

	first, err := svc.Login(context.Background(), "01711111111", "1234")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), "01711111111", "1234")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(context.Background(), user.ID))

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthServiceMe(t *testing.T) {
	svc, userRepo, memberRepo, _ := newAuthFixture(t)
	user := seedLogin(t, userRepo, memberRepo, "01711111111", "1234")

	profile, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "01711111111", profile.User.Username)
	require.NotNil(t, profile.Member)
	assert.Equal(t, "Rahim Uddin", profile.Member.Name)
}
