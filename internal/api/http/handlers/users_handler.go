package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/partner-desk/internal/api/dto"
	"github.com/spec-kit/partner-desk/internal/auth"
	"github.com/spec-kit/partner-desk/internal/repository"
	"github.com/spec-kit/partner-desk/internal/service"
	"github.com/spec-kit/partner-desk/pkg/util/errorutil"
)

const minPasswordLength = 8

// UsersHandler exposes auth endpoints for desk users.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return errorutil.NewValidationError("name, email, password required", nil)
	}
	if len(req.Password) < minPasswordLength {
		return errorutil.NewValidationError("password too short", map[string]any{"password": "must be at least 8 characters"})
	}

	session, err := h.auth.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return errorutil.NewConflict("email already registered", nil)
		}
		return errorutil.NewInternalError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(session)})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return errorutil.NewValidationError("email and password required", nil)
	}

	session, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return errorutil.NewUnauthorized("invalid credentials")
		}
		return errorutil.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// Me handles GET /api/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return errorutil.NewUnauthorized("user required")
	}
	user := principal.User
	return c.JSON(fiber.Map{"data": dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}})
}

func sessionResponse(session *service.Session) fiber.Map {
	return fiber.Map{
		"user": dto.UserResponse{
			ID:    session.User.ID,
			Name:  session.User.Name,
			Email: session.User.Email,
		},
		"auth": dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	}
}
