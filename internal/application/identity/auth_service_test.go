package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/shared"
	"github.com/returnhub/backend/internal/infrastructure/auth"
	"github.com/returnhub/backend/internal/infrastructure/config"
)

// MockAdminRepository is a mock implementation of identity.Repository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AdminUser, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) Save(ctx context.Context, user *identity.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*identity.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(repo identity.Repository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        10,
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newTestAdmin(t *testing.T) *identity.AdminUser {
	t.Helper()
	user, err := identity.NewAdminUser("admin@example.com", "Sam Admin", "sup3r-secret")
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockAdminRepository)
	svc := newTestAuthService(repo)
	user := newTestAdmin(t)

	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{Email: "Admin@Example.com", Password: "sup3r-secret"})

	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockAdminRepository)
	svc := newTestAuthService(repo)
	user := newTestAdmin(t)

	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "wrong"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockAdminRepository)
	svc := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_LogoutBlacklistsToken(t *testing.T) {
	repo := new(MockAdminRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(repo, jwtService, blacklist, zap.NewNop())

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	blacklisted, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthService_Refresh(t *testing.T) {
	repo := new(MockAdminRepository)
	svc := newTestAuthService(repo)
	user := newTestAdmin(t)

	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "sup3r-secret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	repo := new(MockAdminRepository)
	svc := newTestAuthService(repo)

	_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "garbage"})

	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
