package handlers

import (
	"errors"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UsuarioHandler expone la gestión de usuarios de la aplicación.
type UsuarioHandler struct {
	service services.IUsuarioService
}

// NewUsuarioHandler crea el handler con el servicio inyectado.
func NewUsuarioHandler(service services.IUsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

// List GET /api/v1/usuarios
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	usuarios, err := h.service.GetAll(c.UserContext())
	if err != nil {
		configslog.Log.Error("Usuarios.List: error interno", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error al listar usuarios"})
	}
	if usuarios == nil {
		usuarios = []models.Usuario{}
	}
	return c.JSON(usuarios)
}

// Get GET /api/v1/usuarios/:id
func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "ID inválido"})
	}
	usuario, err := h.service.GetByID(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrUsuarioNoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error al obtener el usuario"})
	}
	return c.JSON(usuario)
}

// Create POST /api/v1/usuarios
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var req models.UsuarioCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cuerpo de la petición inválido"})
	}
	usuario, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrUsernameDuplicado) || errors.Is(err, services.ErrUsuarioInvalido) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"detail": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(usuario)
}

// Delete DELETE /api/v1/usuarios/:id
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "ID inválido"})
	}
	if err := h.service.Delete(c.UserContext(), uint(id)); err != nil {
		if errors.Is(err, services.ErrUsuarioNoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error al eliminar el usuario"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Usuario eliminado"})
}
