package service

import (
	"context"
	"testing"

	gosqlmysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"forestinv/internal/auth"
	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListActive(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService("test-secret", "ForestInventoryAPI", "ForestInventoryApp")
}

func hashedUser(password string, active bool) *model.User {
	hash, _ := auth.HashPassword(password)
	return &model.User{
		ID:           uuid.New(),
		Email:        "tecnico@example.com",
		FullName:     "Tecnico de Campo",
		PasswordHash: hash,
		Role:         model.RoleTecnicoForestal,
		Active:       active,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "tecnico@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tecnico@example.com").Return(hashedUser("password123", true), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "tecnico@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tecnico@example.com").Return(hashedUser("password123", true), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "inactive account with correct password",
			email:    "tecnico@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tecnico@example.com").Return(hashedUser("password123", false), nil)
			},
			expectedError: apperrors.ErrUserInactive,
		},
		{
			name:     "inactive account with wrong password stays invalid-credentials",
			email:    "tecnico@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tecnico@example.com").Return(hashedUser("password123", false), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestTokenService())
			result, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, tt.email, result.User.Email)
				assert.NotNil(t, result.User.LastAccessAt)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	input := RegisterInput{
		Email:    "nueva@example.com",
		Password: "password123",
		FullName: "Nueva Usuaria",
		Role:     "Consultor",
	}

	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: input,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nueva@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already registered",
			input: input,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nueva@example.com").Return(&model.User{Email: "nueva@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "racing insert hits the unique index",
			input: input,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nueva@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(&gosqlmysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name: "unknown role fails closed",
			input: RegisterInput{
				Email:    "nueva@example.com",
				Password: "password123",
				FullName: "Nueva Usuaria",
				Role:     "SuperAdmin",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nueva@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestTokenService())
			result, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, tt.input.Email, result.User.Email)
				assert.Equal(t, model.RoleConsultor, result.User.Role)
				assert.True(t, result.User.Active)
				assert.True(t, auth.IsBcryptHash(result.User.PasswordHash))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := hashedUser("old-password", true)

	tests := []struct {
		name          string
		current       string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:    "successful change",
			current: "old-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, user.ID).Return(hashedUser("old-password", true), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:    "wrong current password",
			current: "not-the-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, user.ID).Return(hashedUser("old-password", true), nil)
			},
			expectedError: apperrors.ErrWrongPassword,
		},
		{
			name:    "user not found",
			current: "old-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, user.ID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestTokenService())
			err := service.ChangePassword(context.Background(), user.ID, tt.current, "new-password")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_MigratePasswords(t *testing.T) {
	alreadyHashed, _ := auth.HashPassword("secret-one")
	users := []model.User{
		{ID: uuid.New(), Email: "a@example.com", PasswordHash: alreadyHashed, Active: true},
		{ID: uuid.New(), Email: "b@example.com", PasswordHash: "plaintext-pass", Active: true},
		{ID: uuid.New(), Email: "c@example.com", PasswordHash: "another-plain", Active: true},
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("ListActive", mock.Anything).Return(users, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return auth.IsBcryptHash(u.PasswordHash)
	})).Return(nil).Twice()

	service := NewAuthService(mockRepo, newTestTokenService())
	migrated, err := service.MigratePasswords(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, migrated)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_MigratePasswords_Idempotent(t *testing.T) {
	// A second run over already-migrated rows touches nothing.
	h1, _ := auth.HashPassword("pw-one")
	h2, _ := auth.HashPassword("pw-two")
	users := []model.User{
		{ID: uuid.New(), Email: "a@example.com", PasswordHash: h1, Active: true},
		{ID: uuid.New(), Email: "b@example.com", PasswordHash: h2, Active: true},
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("ListActive", mock.Anything).Return(users, nil)

	service := NewAuthService(mockRepo, newTestTokenService())
	migrated, err := service.MigratePasswords(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, migrated)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_MigratedPasswordStillWorks(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "field@example.com", PasswordHash: "campo2024", Active: true}

	var stored string
	mockRepo := new(MockUserRepository)
	mockRepo.On("ListActive", mock.Anything).Return([]model.User{user}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.User).PasswordHash
		}).Return(nil)

	service := NewAuthService(mockRepo, newTestTokenService())
	migrated, err := service.MigratePasswords(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, migrated)

	// The original plaintext verifies against the migrated hash.
	assert.True(t, auth.CheckPassword("campo2024", stored))
}
