package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forestinv/internal/auth"
	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
	"forestinv/internal/service"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*service.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) MigratePasswords(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type echoValidator struct {
	validator *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newAuthTestContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &echoValidator{validator: validator.New()}
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.TokenCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsCookieKeepsTokenOutOfBody(t *testing.T) {
	svc := new(MockAuthService)
	result := &service.LoginResult{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		User:      &model.User{ID: uuid.New(), Email: "tecnico@example.com", Role: model.RoleTecnicoForestal, Active: true},
	}
	svc.On("Login", mock.Anything, "tecnico@example.com", "password123").Return(result, nil)

	h := NewAuthHandler(svc, false)
	c, rec := newAuthTestContext(http.MethodPost, `{"email":"tecnico@example.com","password":"password123"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	// The body carries the profile and expiry, never the token.
	assert.NotContains(t, rec.Body.String(), "signed.jwt.token")
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tecnico@example.com", resp.User.Email)
	assert.NotContains(t, rec.Body.String(), "password_hash")

	svc.AssertExpectations(t)
}

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{"unknown email or wrong password", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", apperrors.ErrUserInactive, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			h := NewAuthHandler(svc, false)
			c, rec := newAuthTestContext(http.MethodPost, `{"email":"x@example.com","password":"password123"}`)

			err := h.Login(c)
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestAuthHandler_Login_RejectsBadInput(t *testing.T) {
	h := NewAuthHandler(new(MockAuthService), false)

	tests := []struct {
		name string
		body string
	}{
		{"missing password", `{"email":"x@example.com"}`},
		{"malformed email", `{"email":"not-an-email","password":"password123"}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthTestContext(http.MethodPost, tt.body)
			err := h.Login(c)
			require.Error(t, err)
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailTaken)

	h := NewAuthHandler(svc, false)
	c, _ := newAuthTestContext(http.MethodPost,
		`{"email":"dup@example.com","password":"password123","full_name":"Dup User","role":"Consultor"}`)

	err := h.Register(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(new(MockAuthService), false)

	t.Run("clears the cookie when authenticated", func(t *testing.T) {
		c, rec := newAuthTestContext(http.MethodPost, "")
		auth.SetIdentity(c, &auth.Identity{UserID: uuid.New(), Role: model.RoleConsultor})

		require.NoError(t, h.Logout(c))
		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		c, _ := newAuthTestContext(http.MethodPost, "")
		err := h.Logout(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestAuthHandler_MigratePasswords_GatedByFlag(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false)
		c, _ := newAuthTestContext(http.MethodPost, "")

		err := h.MigratePasswords(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
		svc.AssertNotCalled(t, "MigratePasswords", mock.Anything)
	})

	t.Run("runs when the operator flag is set", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("MigratePasswords", mock.Anything).Return(7, nil)
		h := NewAuthHandler(svc, true)
		c, rec := newAuthTestContext(http.MethodPost, "")

		require.NoError(t, h.MigratePasswords(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"migrated_passwords":7`)
		svc.AssertExpectations(t)
	})
}
