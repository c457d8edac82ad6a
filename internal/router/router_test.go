package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"forestinv/internal/auth"
	"forestinv/internal/config"
	"forestinv/internal/handler"
	"forestinv/internal/model"
	"forestinv/internal/service"
)

// memoryUserRepo is an in-memory UserRepository for wiring the real router in
// tests. Email uniqueness is enforced like the database index would.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *memoryUserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, user := range r.users {
		if user.Active {
			out = append(out, user)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	cfg := &config.Config{CORSOrigins: "http://localhost:5173"}
	tokens := auth.NewTokenService("test-secret", "ForestInventoryAPI", "ForestInventoryApp")
	authService := service.NewAuthService(newMemoryUserRepo(), tokens)

	Register(
		e,
		cfg,
		tokens,
		handler.NewAuthHandler(authService, false),
		handler.NewUserHandler(nil),
		handler.NewPlotHandler(nil),
		handler.NewTreeHandler(nil),
		handler.NewSpeciesHandler(nil),
		handler.NewSyncLogHandler(nil),
		handler.NewExportHandler(nil),
	)
	return e
}

func doJSON(e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	e := newTestServer(t)

	// Register: cookie is set, body carries the profile but never the token
	// or any password material.
	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","password":"Passw0rd!","full_name":"A B","role":"Consultor"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	session := cookieNamed(rec, auth.TokenCookieName)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)

	body := rec.Body.String()
	assert.NotContains(t, body, session.Value)
	assert.NotContains(t, body, "Passw0rd!")
	assert.NotContains(t, body, "password_hash")

	var registered struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.NotEqual(t, uuid.Nil, registered.User.ID)

	// Verify with the cookie returns the same user.
	rec = doJSON(e, http.MethodGet, "/api/auth/verify", "", session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var verified model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verified))
	assert.Equal(t, registered.User.ID, verified.ID)
	assert.Equal(t, "a@b.com", verified.Email)

	// Logout clears the cookie.
	rec = doJSON(e, http.MethodPost, "/api/auth/logout", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := cookieNamed(rec, auth.TokenCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// Without a fresh login the browser no longer holds a token.
	rec = doJSON(e, http.MethodGet, "/api/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmailThroughRouter(t *testing.T) {
	e := newTestServer(t)
	payload := `{"email":"dup@b.com","password":"Passw0rd!","full_name":"Dup User","role":"Consultor"}`

	rec := doJSON(e, http.MethodPost, "/api/auth/register", payload, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/api/auth/register", payload, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
	assert.Nil(t, cookieNamed(rec, auth.TokenCookieName))
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/api/users", "/api/plots", "/api/export/summary"} {
		rec := doJSON(e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	// Health stays public.
	rec := doJSON(e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
