package handlers

import (
	"errors"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AsistenciaHandler expone el servicio de asistencia como API JSON.
type AsistenciaHandler struct {
	service services.IAsistenciaService
}

// NewAsistenciaHandler crea el handler con el servicio inyectado.
func NewAsistenciaHandler(service services.IAsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{service: service}
}

// Search GET /api/v1/search?query=
func (h *AsistenciaHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	result, err := h.service.Search(c.UserContext(), query)
	if err != nil {
		if errors.Is(err, services.ErrConsultaVacia) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}
		if errors.Is(err, services.ErrInvitadoNoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "No se encontró ningún invitado con los criterios especificados",
			})
		}
		configslog.Log.Error("Search: error interno", zap.String("query", query), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error interno al buscar"})
	}
	return c.JSON(result)
}

// ConfirmarAsistencia POST /api/v1/confirmar_asistencia
func (h *AsistenciaHandler) ConfirmarAsistencia(c *fiber.Ctx) error {
	var req models.ConfirmarAsistenciaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ConfirmarAsistenciaResponse{
			Success: false, Message: "Cuerpo de la petición inválido",
		})
	}
	result, err := h.service.ConfirmarAsistencia(c.UserContext(), req)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrInvitadoNoEncontrado) || errors.Is(err, services.ErrDatosInvalidos) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.ConfirmarAsistenciaResponse{
			Success: false, Message: err.Error(),
		})
	}
	return c.JSON(result)
}

// GetStats GET /api/v1/stats
func (h *AsistenciaHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		configslog.Log.Error("GetStats: error interno", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error al obtener estadísticas"})
	}
	return c.JSON(stats)
}

// GetAllInvitados GET /api/v1/invitados
func (h *AsistenciaHandler) GetAllInvitados(c *fiber.Ctx) error {
	invitados, err := h.service.GetAllInvitados(c.UserContext())
	if err != nil {
		configslog.Log.Error("GetAllInvitados: error interno", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error al obtener los invitados"})
	}
	if invitados == nil {
		invitados = []models.Invitado{}
	}
	return c.JSON(invitados)
}

// EliminarTodos DELETE /api/v1/invitados/eliminar-todos/
func (h *AsistenciaHandler) EliminarTodos(c *fiber.Ctx) error {
	result, err := h.service.EliminarTodos(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"detail":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registros eliminados exitosamente",
		"deleted": result,
	})
}

// AgregarInvitadoRapido POST /api/v1/agregar-invitado-rapido
func (h *AsistenciaHandler) AgregarInvitadoRapido(c *fiber.Ctx) error {
	// El frontend envía los datos como query params; también se acepta
	// un cuerpo JSON equivalente.
	req := struct {
		Nombre string `json:"nombre"`
		Cedula string `json:"cedula"`
	}{Nombre: c.Query("nombre"), Cedula: c.Query("cedula")}
	if req.Nombre == "" && req.Cedula == "" {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cuerpo de la petición inválido"})
		}
	}
	invitado, err := h.service.AgregarInvitadoRapido(c.UserContext(), req.Nombre, req.Cedula)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrCedulaInvitadoDuplicada) || errors.Is(err, services.ErrDatosInvalidos) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"detail": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Invitado " + invitado.Nombre + " agregado y confirmado exitosamente",
		"invitado": fiber.Map{"id": invitado.ID, "nombre": invitado.Nombre, "cedula": invitado.Cedula},
	})
}

// AgregarAcompananteExtra POST /api/v1/agregar-acompanante-extra
func (h *AsistenciaHandler) AgregarAcompananteExtra(c *fiber.Ctx) error {
	// Mismo contrato que el alta rápida: query params del frontend,
	// cuerpo JSON como alternativa.
	req := struct {
		InvitadoID uint   `json:"invitado_id"`
		Nombre     string `json:"nombre_acompanante"`
		Cedula     string `json:"cedula_acompanante"`
	}{
		InvitadoID: uint(c.QueryInt("invitado_id")),
		Nombre:     c.Query("nombre_acompanante"),
		Cedula:     c.Query("cedula_acompanante"),
	}
	if req.InvitadoID == 0 && req.Nombre == "" && req.Cedula == "" {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cuerpo de la petición inválido"})
		}
	}
	acompanante, err := h.service.AgregarAcompananteExtra(c.UserContext(), req.InvitadoID, req.Nombre, req.Cedula)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrInvitadoNoEncontrado):
			status = fiber.StatusNotFound
		case errors.Is(err, services.ErrCedulaAcompananteDuplicada), errors.Is(err, services.ErrDatosInvalidos):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"detail": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Acompañante " + acompanante.Nombre + " agregado y confirmado exitosamente",
		"acompanante": fiber.Map{
			"id": acompanante.ID, "nombre": acompanante.Nombre, "invitado_id": acompanante.InvitadoID,
		},
	})
}
