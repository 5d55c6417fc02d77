package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo"

	"github.com/matchpoint-app/backend/internal/entity"
	userRepo "github.com/matchpoint-app/backend/internal/repository/user"
	"github.com/matchpoint-app/backend/pkg/jwt"
)

// JWTMiddleware resolves the bearer token to a user and stores both the
// claims and the user record on the request context.
func JWTMiddleware(tokens *jwt.Manager, users userRepo.IUserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "missing token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token format"})
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}

			user, err := users.GetUserByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}

			c.Set("claims", claims)
			c.Set("user", user)

			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user set by JWTMiddleware.
func UserFromContext(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get("user").(*entity.User)
	return user, ok
}
