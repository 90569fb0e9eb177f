package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mosquito-alert/internal/api/dto"
	"github.com/spec-kit/mosquito-alert/internal/auth"
	"github.com/spec-kit/mosquito-alert/internal/service"
	"github.com/spec-kit/mosquito-alert/internal/store"
)

// AuthHandler exposes session endpoints backed by the auth store.
type AuthHandler struct {
	store   *store.AuthStore
	tokens  *auth.TokenManager
	qrCodes *service.QRCodeService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authStore *store.AuthStore, tokens *auth.TokenManager, qrCodes *service.QRCodeService) *AuthHandler {
	return &AuthHandler{store: authStore, tokens: tokens, qrCodes: qrCodes}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := h.store.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sessionResponse(c, http.StatusCreated, user.ID, user.Name)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, err := h.store.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sessionResponse(c, http.StatusOK, user.ID, user.Name)
}

// QRLogin handles POST /auth/qr.
func (h *AuthHandler) QRLogin(c *fiber.Ctx) error {
	var req dto.QRLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.store.LoginWithQRCode(c.UserContext(), req.Token)
	if err != nil {
		return err
	}
	return h.sessionResponse(c, http.StatusOK, user.ID, user.Name)
}

// QRCode handles GET /auth/qr-code.
func (h *AuthHandler) QRCode(c *fiber.Ctx) error {
	token, imageURL := h.qrCodes.GenerateLoginCode()
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"token":     token,
			"image_url": imageURL,
		},
	})
}

// Logout handles POST /auth/logout. Always succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout(c.UserContext())
	return c.Status(http.StatusNoContent).Send(nil)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.store.CurrentUser()
	if user == nil {
		return fiber.NewError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": user}})
}

func (h *AuthHandler) sessionResponse(c *fiber.Ctx, status int, userID, userName string) error {
	token, exp, err := h.tokens.GenerateToken(userID, userName)
	if err != nil {
		return err
	}
	user := h.store.CurrentUser()
	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{
			"user": user,
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
