package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bitforge/playground-api/internal/security"
)

// TokenCookie is the name of the client-held identity cookie.
const TokenCookie = "token"

// Auth verifies the identity token and injects the resolved identity into
// context. The token is read from the "token" cookie set at signup/login;
// an Authorization: Bearer header is accepted as a fallback for non-browser
// clients. Handlers behind this middleware trust the attached identity
// without re-verifying.
func Auth(tokens *security.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFromRequest(c)
			if err != nil {
				return err
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", claims.Subject)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}

// OptionalAuth injects the identity when a valid token is presented and lets
// the request through anonymously otherwise. Logout uses it: clearing the
// cookie must succeed with or without a token, but a verified identity lets
// the sign-off be recorded.
func OptionalAuth(tokens *security.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := tokenFromRequest(c)
			if err != nil {
				return next(c)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return next(c)
			}

			c.Set("user_id", claims.Subject)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
