package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func setupAuth(t *testing.T) {
	t.Helper()
	InitMiddleware(&config.Config{JWTSecret: "auth-test-secret-key-of-decent-length"})
}

func signToken(t *testing.T, userID uint, secret string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", RequireLogin, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	app.Get("/open", OptionalAuth, func(c *fiber.Ctx) error {
		id, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": id})
	})
	return app
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	setupAuth(t)
	app := newAuthApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private?page=2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/auth/login?next=%2Fprivate%3Fpage%3D2" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestRequireLoginAcceptsBearerToken(t *testing.T) {
	setupAuth(t)
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, cfg.JWTSecret, time.Hour))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireLoginAcceptsCookie(t *testing.T) {
	setupAuth(t)
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{
		Name:  AuthCookieName,
		Value: signToken(t, 7, cfg.JWTSecret, time.Hour),
	})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireLoginRejectsExpiredToken(t *testing.T) {
	setupAuth(t)
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, cfg.JWTSecret, -time.Hour))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expired token should redirect to login, got %d", resp.StatusCode)
	}
}

func TestRequireLoginRejectsWrongSecret(t *testing.T) {
	setupAuth(t)
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 7, "some-other-secret-entirely-here!", time.Hour))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("forged token should redirect to login, got %d", resp.StatusCode)
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	setupAuth(t)
	app := newAuthApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for anonymous optional auth, got %d", resp.StatusCode)
	}
}
