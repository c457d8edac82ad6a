package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forestinv/internal/model"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "ForestInventoryAPI"
	testAudience = "ForestInventoryApp"
)

func testUser() *model.User {
	return &model.User{
		ID:           uuid.New(),
		Email:        "tecnico@example.com",
		FullName:     "Tecnico de Campo",
		Role:         model.RoleTecnicoForestal,
		Organization: "INAB",
		Active:       true,
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, testIssuer, testAudience)
	user := testUser()

	token, expiresAt, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.Equal(t, "TecnicoForestal", claims.Role)
	assert.Equal(t, user.Organization, claims.Organization)
}

func TestTokenService_TokensDifferAcrossInstants(t *testing.T) {
	base := time.Now()
	svc := NewTokenService(testSecret, testIssuer, testAudience)
	user := testUser()

	svc.now = func() time.Time { return base }
	first, _, err := svc.Issue(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Second) }
	second, _, err := svc.Issue(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	svc := NewTokenService(testSecret, testIssuer, testAudience)
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.Issue(testUser())
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"well before expiry", issuedAt.Add(12 * time.Hour), nil},
		{"one minute before expiry", issuedAt.Add(TokenExpiry - time.Minute), nil},
		{"one second past expiry", issuedAt.Add(TokenExpiry + time.Second), ErrInvalidToken},
		{"one hour past expiry", issuedAt.Add(TokenExpiry + time.Hour), ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.at }
			claims, err := svc.Validate(token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	user := testUser()
	svc := NewTokenService(testSecret, testIssuer, testAudience)

	otherKey := NewTokenService("another-secret", testIssuer, testAudience)
	otherIssuer := NewTokenService(testSecret, "SomeOtherAPI", testAudience)
	otherAudience := NewTokenService(testSecret, testIssuer, "SomeOtherApp")

	tests := []struct {
		name  string
		mint  *TokenService
		token string
	}{
		{"garbage string", nil, "not.a.jwt"},
		{"empty string", nil, ""},
		{"wrong signing key", otherKey, ""},
		{"wrong issuer", otherIssuer, ""},
		{"wrong audience", otherAudience, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token
			if tt.mint != nil {
				var err error
				token, _, err = tt.mint.Issue(user)
				require.NoError(t, err)
			}
			claims, err := svc.Validate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
