// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// LoginPath is where anonymous callers of protected routes are sent. The
// original destination travels along in the "next" query parameter.
const LoginPath = "/auth/login"

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthCookieName is the cookie carrying the JWT for browser-style clients.
// API clients may send the same token as a Bearer header instead.
const AuthCookieName = "inkwell_token"

// userIDFromToken validates the JWT and extracts the user ID from the "sub" claim.
func userIDFromToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return 0, false
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// tokenFromRequest pulls the JWT from the Authorization header or, failing
// that, the auth cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(AuthCookieName)
}

// RequireLogin enforces authentication. Anonymous callers are redirected to
// the login page with a "next" parameter pointing back at the original URL
// rather than receiving a bare 401.
func RequireLogin(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token != "" {
		if userID, ok := userIDFromToken(token); ok {
			c.Locals("userID", userID)
			return c.Next()
		}
	}
	return RedirectToLogin(c)
}

// OptionalAuth resolves the user ID when a valid token is present and lets
// the request through either way.
func OptionalAuth(c *fiber.Ctx) error {
	if token := tokenFromRequest(c); token != "" {
		if userID, ok := userIDFromToken(token); ok {
			c.Locals("userID", userID)
		}
	}
	return c.Next()
}

// RedirectToLogin issues the 302 to the login page with the return path.
func RedirectToLogin(c *fiber.Ctx) error {
	next := c.OriginalURL()
	return c.Redirect(LoginPath+"?next="+url.QueryEscape(next), fiber.StatusFound)
}

// WebSocketAuthRequired validates JWT tokens from the query string for
// websocket upgrades, falling back to the regular header/cookie lookup.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		token = tokenFromRequest(c)
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token required",
		})
	}

	userID, ok := userIDFromToken(token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	c.Locals("userID", userID)
	return c.Next()
}
