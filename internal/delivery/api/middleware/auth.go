package middleware

import (
	"log/slog"
	"strings"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "userID"
	contextKeyRoles  = "roles"

	// QueryTokenParam carries the access token on websocket upgrades, where
	// browsers cannot set an Authorization header.
	QueryTokenParam = "token"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer access token and stores the caller in the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Please sign in to continue")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		return m.authenticate(c, next, tokenString)
	}
}

// AuthenticateQuery is Authenticate for websocket upgrades: the token comes from ?token=.
func (m *AuthMiddleware) AuthenticateQuery(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := c.QueryParam(QueryTokenParam)
		if tokenString == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Please sign in to continue")
		}

		return m.authenticate(c, next, tokenString)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, next echo.HandlerFunc, tokenString string) error {
	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Rejected access token", slog.Any("error", err))

		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
	}

	c.Set(contextKeyUserID, claims.UserID)
	c.Set(contextKeyRoles, entity.RolesFromStrings(claims.Roles))
	c.SetRequest(c.Request().WithContext(deliverycontext.WithUser(c.Request().Context(), claims.UserID, m.logger)))

	return next(c)
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := GetRoles(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if !roles.Contains(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}

// GetRoles returns the authenticated user's roles.
func GetRoles(c echo.Context) (entity.Roles, bool) {
	roles, ok := c.Get(contextKeyRoles).(entity.Roles)

	return roles, ok
}

// GetViewer describes the caller for ownership checks.
func GetViewer(c echo.Context) (usecase.Viewer, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return usecase.Viewer{}, false
	}
	roles, _ := GetRoles(c)

	return usecase.Viewer{UserID: userID, IsAdmin: roles.Contains(entity.RoleAdmin)}, true
}

// SetIdentity stores a caller in the context; used by tests and internal callers.
func SetIdentity(c echo.Context, userID uuid.UUID, roles ...entity.Role) {
	c.Set(contextKeyUserID, userID)
	c.Set(contextKeyRoles, entity.Roles(roles))
}
