package service

import (
	"testing"
	"time"

	"visitmelaka/internal/config"
	"visitmelaka/internal/http-api/middleware/auth"
	"visitmelaka/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(refreshToken *models.RefreshToken) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(tokenString string) (*models.RefreshToken, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired() error {
	args := m.Called()
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-key-that-is-long-enough!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		userRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
		userRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
			// password must be stored hashed, never in the clear
			return u.Email == "new@example.com" &&
				u.Role == models.RoleUser &&
				u.Password != "secret123" &&
				auth.VerifyPassword(u.Password, "secret123") == nil
		})).Return(nil).Once()

		user, err := svc.Register("newuser", "new@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "newuser", user.Username)
		userRepo.AssertExpectations(t)
	})

	t.Run("EmailAlreadyRegistered", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		existing := &models.User{UserID: 1, Email: "taken@example.com"}
		userRepo.On("FindByEmail", "taken@example.com").Return(existing, nil).Once()

		user, err := svc.Register("someone", "taken@example.com", "secret123")

		assert.ErrorIs(t, err, ErrEmailInUse)
		assert.Nil(t, user)
		userRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	assert.NoError(t, err)

	fixture := &models.User{
		UserID:   42,
		Username: "melaka_fan",
		Email:    "fan@example.com",
		Password: hashed,
		Role:     models.RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		userRepo.On("FindByEmail", "fan@example.com").Return(fixture, nil).Once()
		tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil).Once()

		accessToken, refreshToken, user, err := svc.Login("fan@example.com", "correct-horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, int64(42), user.UserID)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		userRepo.On("FindByEmail", "fan@example.com").Return(fixture, nil).Once()

		_, _, _, err := svc.Login("fan@example.com", "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		tokenRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		userRepo.On("FindByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound).Once()

		_, _, _, err := svc.Login("nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	hashed, err := auth.HashPassword("correct-horse")
	assert.NoError(t, err)

	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, tokenRepo, testConfig())

	fixture := &models.User{UserID: 42, Username: "melaka_fan", Email: "fan@example.com", Password: hashed, Role: models.RoleAdmin}
	userRepo.On("FindByEmail", "fan@example.com").Return(fixture, nil).Once()
	tokenRepo.On("Create", mock.Anything).Return(nil).Once()

	accessToken, _, _, err := svc.Login("fan@example.com", "correct-horse")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(accessToken)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "melaka_fan", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), testConfig())

	claims, err := svc.ValidateToken("not.a.jwt")

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	t.Run("RotatesTokenPair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		stored := &models.RefreshToken{
			ID:        "token-id-1",
			UserID:    42,
			Token:     "old-refresh-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		tokenRepo.On("FindByToken", "old-refresh-token").Return(stored, nil).Once()
		userRepo.On("FindByID", int64(42)).Return(&models.User{UserID: 42, Username: "melaka_fan"}, nil).Once()
		tokenRepo.On("Revoke", "token-id-1").Return(nil).Once()
		tokenRepo.On("Create", mock.Anything).Return(nil).Once()

		newAccess, newRefresh, err := svc.RefreshAccessToken("old-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.NotEqual(t, "old-refresh-token", newRefresh)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("ExpiredTokenIsDeleted", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(userRepo, tokenRepo, testConfig())

		stored := &models.RefreshToken{
			ID:        "token-id-2",
			UserID:    42,
			Token:     "stale-token",
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		tokenRepo.On("FindByToken", "stale-token").Return(stored, nil).Once()
		tokenRepo.On("Delete", "token-id-2").Return(nil).Once()

		_, _, err := svc.RefreshAccessToken("stale-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
		tokenRepo.AssertExpectations(t)
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		tokenRepo := new(MockRefreshTokenRepository)
		svc := NewAuthService(new(MockUserRepository), tokenRepo, testConfig())

		tokenRepo.On("FindByToken", "never-issued").Return(nil, gorm.ErrRecordNotFound).Once()

		_, _, err := svc.RefreshAccessToken("never-issued")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
