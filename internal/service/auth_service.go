package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forestinv/internal/auth"
	"forestinv/internal/db"
	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
	"forestinv/internal/repository"
)

// LoginResult is a successful authentication: the signed token plus the
// profile to return. The token itself only ever travels in the cookie.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// RegisterInput carries the fields accepted by Register.
type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	Role         string
	Phone        string
	Organization string
}

// AuthService handles login, registration, password change and the one-shot
// legacy password migration.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	MigratePasswords(ctx context.Context) (int, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password are indistinguishable to the caller; an inactive account
// with a correct password is reported separately.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, apperrors.ErrUserInactive
	}

	now := time.Now().UTC()
	user.LastAccessAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update last access: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Printf("login ok for %s", auth.MaskEmail(email))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Register creates a new active user and logs them in. The email pre-check is
// a fast path; the unique index on users.email is the real guarantee, and a
// constraint violation from a racing insert maps to the same conflict error.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	role, err := model.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.ErrInvalidRole
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hashed,
		Role:         role,
		Active:       true,
		Phone:        input.Phone,
		Organization: input.Organization,
		CreatedAt:    now,
		LastAccessAt: &now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Printf("registered %s", auth.MaskEmail(input.Email))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ChangePassword re-verifies the current password before accepting a new one.
// The new password is hashed with a fresh salt.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// MigratePasswords rewrites every active user whose stored credential is still
// plaintext into a bcrypt hash. Idempotent: migrated rows carry the bcrypt
// prefix and are skipped on later runs.
func (s *authService) MigratePasswords(ctx context.Context) (int, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active users: %w", err)
	}

	migrated := 0
	for i := range users {
		user := &users[i]
		if auth.IsBcryptHash(user.PasswordHash) {
			continue
		}
		hashed, err := auth.HashPassword(user.PasswordHash)
		if err != nil {
			return migrated, fmt.Errorf("hash password for %s: %w", auth.MaskEmail(user.Email), err)
		}
		user.PasswordHash = hashed
		if err := s.users.Update(ctx, user); err != nil {
			return migrated, fmt.Errorf("update %s: %w", auth.MaskEmail(user.Email), err)
		}
		migrated++
		log.Printf("migrated password for %s", auth.MaskEmail(user.Email))
	}
	return migrated, nil
}
