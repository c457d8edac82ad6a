package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"forestinv/internal/model"
)

// TokenExpiry is the fixed lifetime of a session token.
const TokenExpiry = 24 * time.Hour

// ErrInvalidToken is the only error Validate returns. Signature, issuer,
// audience and expiry failures are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity assertions embedded in a session token.
type Claims struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 session tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenService creates a token service with the given symmetric key and
// expected issuer/audience.
func NewTokenService(secret, issuer, audience string) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

// Issue builds a signed token for the user with a 24h expiry. Tokens issued at
// different instants for the same user differ.
func (s *TokenService) Issue(user *model.User) (token string, expiresAt time.Time, err error) {
	now := s.now()
	expiresAt = now.Add(TokenExpiry)
	claims := &Claims{
		UserID:       user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role.String(),
		Organization: user.Organization,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate checks signature, issuer, audience and expiry (zero clock skew) and
// returns the decoded claims. All failures collapse to ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Claims are validated against the service clock so expiry is enforced
	// exactly, with no skew tolerance.
	now := s.now()
	if !claims.VerifyExpiresAt(now, true) ||
		!claims.VerifyIssuer(s.issuer, true) ||
		!claims.VerifyAudience(s.audience, true) ||
		!claims.VerifyNotBefore(now, false) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
