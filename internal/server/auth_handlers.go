package server

import (
	"strconv"
	"time"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "quill-api"
	tokenAudience = "quill-client"
	tokenLifetime = 30 * 24 * time.Hour
	cookieName    = "jwt"
)

// issueToken signs an identity claim for the user. The admin flag rides in the
// claim and is trusted for its lifetime.
func (s *Server) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"is_admin": user.IsAdmin,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// setTokenCookie attaches the identity cookie. Secure is off in development so
// local HTTP clients work.
func (s *Server) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   s.config.Env != "development",
		Path:     "/",
	})
}

// clearTokenCookie expires the identity cookie.
func (s *Server) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   s.config.Env != "development",
		Path:     "/",
	})
}

// Signup handles POST /api/user/.
func (s *Server) Signup(c *fiber.Ctx) error {
	var in service.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/user/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}
	if in.Email == "" || in.Password == "" {
		return models.RespondError(c, models.NewValidationError("email and password are required"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return models.RespondError(c, err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.RespondError(c, err)
	}
	s.setTokenCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// Logout handles POST /api/user/logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearTokenCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}
