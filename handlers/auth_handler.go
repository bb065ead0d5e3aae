package handlers

import (
	"errors"
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler expone login y verificación de tokens.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler crea el handler con el servicio inyectado.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cuerpo de la petición inválido"})
	}
	token, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrCredencialesInvalidas) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error interno al iniciar sesión"})
	}
	return c.JSON(models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	usuario, err := h.service.Me(c.UserContext(), bearerToken(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": services.ErrTokenInvalido.Error()})
	}
	return c.JSON(usuario)
}

// Verify POST /api/v1/auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	usuario, err := h.service.Me(c.UserContext(), bearerToken(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": services.ErrTokenInvalido.Error()})
	}
	return c.JSON(fiber.Map{
		"valid": true,
		"user": fiber.Map{
			"id":              usuario.ID,
			"username":        usuario.Username,
			"nombre_completo": usuario.NombreCompleto,
		},
	})
}

// bearerToken extrae el token del encabezado Authorization.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}
