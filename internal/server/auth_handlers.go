package server

import (
	"fmt"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long issued JWTs stay valid.
const tokenTTL = 72 * time.Hour

// Signup registers a new user and logs them in.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Username, email and password are required"))
	}
	if len(req.Username) > 150 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Username must be at most 150 characters"))
	}
	if len(req.Password) < 8 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Password must be at least 8 characters"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login authenticates by username and password.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		// Do not reveal whether the username exists.
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Invalid credentials"))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	next := c.Query("next")
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
		"next":  next,
	})
}

// LoginPage is the landing target of authentication redirects. It tells the
// caller where to POST credentials and echoes the "next" parameter so the
// client can return to the page that triggered the redirect.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"login": middleware.LoginPath,
		"next":  c.Query("next", "/"),
	})
}

// generateToken issues an HMAC-signed JWT with the user ID in the "sub" claim.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// setAuthCookie stores the JWT for browser-style clients so subsequent page
// requests authenticate without an Authorization header.
func (s *Server) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
