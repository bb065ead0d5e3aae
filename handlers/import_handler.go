package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler expone la importación y la plantilla de Excel.
type ImportHandler struct {
	service services.IImportService
}

// NewImportHandler crea el handler con el servicio inyectado.
func NewImportHandler(service services.IImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportarExcel POST /import/import-excel (multipart, campo "file").
func (h *ImportHandler) ImportarExcel(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Debe adjuntar un archivo en el campo 'file'"})
	}
	nombre := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(nombre, ".xlsx") && !strings.HasSuffix(nombre, ".xls") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "El archivo debe ser un Excel (.xlsx o .xls)"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "No se pudo abrir el archivo adjunto"})
	}
	defer file.Close()
	contenido, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "No se pudo leer el archivo adjunto"})
	}

	result, err := h.service.ImportarExcel(c.UserContext(), contenido)
	if err != nil {
		if errors.Is(err, services.ErrArchivoIlegible) ||
			errors.Is(err, services.ErrHojaInvitadosFalta) ||
			errors.Is(err, services.ErrColumnasFaltantes) ||
			errors.Is(err, services.ErrHojaVacia) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}
		configslog.Log.Error("ImportarExcel: error interno", zap.String("archivo", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":               "Importación completada exitosamente",
		"invitados_creados":     result.InvitadosCreados,
		"invitados_omitidos":    result.InvitadosOmitidos,
		"acompanantes_creados":  result.AcompanantesCreados,
		"acompanantes_omitidos": result.AcompanantesOmitidos,
		"hojas_procesadas":      result.HojasProcesadas,
	})
}

// ExportarPlantilla GET /import/export-template
func (h *ImportHandler) ExportarPlantilla(c *fiber.Ctx) error {
	contenido, err := h.service.GenerarPlantilla()
	if err != nil {
		configslog.Log.Error("ExportarPlantilla: error interno", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "No se pudo generar la plantilla"})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=plantilla_invitados.xlsx`)
	return c.Send(contenido)
}
