package middlewares

import (
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth exige un token Bearer válido y deja el username en Locals.
func RequireAuth(authService services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Token requerido"})
		}
		username, err := authService.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Token inválido"})
		}
		c.Locals("username", username)
		return c.Next()
	}
}
