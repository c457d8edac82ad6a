package auth

import (
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"forestinv/internal/model"
)

// TokenCookieName is the HTTP-only cookie the session token travels in.
const TokenCookieName = "jwt_token"

// identityContextKey is the echo context key the decoded identity is stored under.
const identityContextKey = "auth_identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	FullName     string
	Organization string
	Role         model.Role
}

// Route authorization policies. A route names a policy; the policy names the
// roles allowed through.
const (
	PolicyAdmin  = "admin-only"
	PolicyStaff  = "staff"
	PolicyReader = "reader"
)

var policies = map[string][]model.Role{
	PolicyAdmin:  {model.RoleAdministrador},
	PolicyStaff:  {model.RoleAdministrador, model.RoleSupervisor, model.RoleTecnicoForestal},
	PolicyReader: {model.RoleAdministrador, model.RoleSupervisor, model.RoleTecnicoForestal, model.RoleConsultor},
}

// Middleware builds the per-request access-control gate. The token is read
// from the session cookie first, then from the Authorization header. A missing
// or invalid token lets the request continue unauthenticated; rejection
// happens at the route policy.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + TokenCookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Validate(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get("user").(*Claims)
			if !ok {
				return
			}
			if id, err := identityFromClaims(claims); err == nil {
				c.Set(identityContextKey, id)
			}
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// Treated as unauthenticated; the failure reason stays internal.
			return nil
		},
	})
}

func identityFromClaims(claims *Claims) (*Identity, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UserID:       userID,
		Email:        claims.Email,
		FullName:     claims.FullName,
		Organization: claims.Organization,
		Role:         role,
	}, nil
}

// IdentityFrom returns the authenticated identity attached to the request, if any.
func IdentityFrom(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityContextKey).(*Identity)
	return id, ok
}

// SetIdentity attaches an identity to the request context. Exposed for tests.
func SetIdentity(c echo.Context, id *Identity) {
	c.Set(identityContextKey, id)
}

// RequirePolicy denies the request unless an identity is attached and its role
// is in the named policy's allowed set.
func RequirePolicy(name string) echo.MiddlewareFunc {
	allowed := policies[name]
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, role := range allowed {
				if id.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
