package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor_user_id"

// ActorID returns the authenticated user id set by AuthMiddleware, or ""
// on unauthenticated routes.
func ActorID(c echo.Context) string {
	v, _ := c.Get(actorContextKey).(string)
	return v
}

// SetActorID is exposed for handler tests that bypass the middleware.
func SetActorID(c echo.Context, userID string) {
	c.Set(actorContextKey, userID)
}

// AuthMiddleware validates a Bearer token signed with HS256 and stores the
// subject claim as the acting user id.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token missing subject"})
			}

			c.Set(actorContextKey, sub)
			return next(c)
		}
	}
}
