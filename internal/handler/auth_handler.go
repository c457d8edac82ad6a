package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"forestinv/internal/auth"
	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
	"forestinv/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    service.AuthService
	allowMigration bool
}

// NewAuthHandler creates a new auth handler. allowMigration gates the
// password migration endpoint behind the operator flag.
func NewAuthHandler(authService service.AuthService, allowMigration bool) *AuthHandler {
	return &AuthHandler{authService: authService, allowMigration: allowMigration}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required,min=3"`
	Role         string `json:"role" validate:"required"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// SessionResponse is what login and register return. The token itself only
// travels in the HTTP-only cookie, never in the body.
type SessionResponse struct {
	User      *model.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func setTokenCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearTokenCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Login godoc
// @Summary Log in
// @Description Sets the session token in an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	setTokenCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(http.StatusOK, SessionResponse{User: result.User, ExpiresAt: result.ExpiresAt})
}

// Register godoc
// @Summary Register a new user
// @Description Creates the user and logs them in via the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Role:         req.Role,
		Phone:        req.Phone,
		Organization: req.Organization,
	})
	if err != nil {
		return httpError(err)
	}

	setTokenCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(http.StatusOK, SessionResponse{User: result.User, ExpiresAt: result.ExpiresAt})
}

// Logout godoc
// @Summary Log out
// @Description Deletes the session cookie. The token stays valid until expiry.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := currentIdentity(c); err != nil {
		return err
	}
	clearTokenCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Verify godoc
// @Summary Verify the current session
// @Description Returns the authenticated user's profile.
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUserByID(c.Request().Context(), id.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password changed"})
}

// MigratePasswords godoc
// @Summary Migrate legacy plaintext passwords to bcrypt
// @Description One-shot maintenance operation; requires ALLOW_PASSWORD_MIGRATION=true.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/migrate-passwords [post]
func (h *AuthHandler) MigratePasswords(c echo.Context) error {
	if !h.allowMigration {
		return httpError(apperrors.ErrMigrationDisabled)
	}

	migrated, err := h.authService.MigratePasswords(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":            "migration complete",
		"migrated_passwords": migrated,
	})
}
