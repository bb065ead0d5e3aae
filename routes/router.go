package routes

import (
	"strings"
	"time"

	"github.com/Mrchuchi/confirmacion-asistencia/configs"
	"github.com/Mrchuchi/confirmacion-asistencia/handlers"
	"github.com/Mrchuchi/confirmacion-asistencia/middlewares"
	"github.com/Mrchuchi/confirmacion-asistencia/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// SetupRoutes registra los middlewares globales y todas las rutas de la
// API. Los servicios se construyen aquí con el handle de BD inyectado.
func SetupRoutes(app *fiber.App, db *gorm.DB, settings *configs.Settings) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(settings.CORSOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	asistenciaService := services.NewAsistenciaService(db)
	importService := services.NewImportService(db)
	usuarioService := services.NewUsuarioService(db)
	authService := services.NewAuthService(db, settings.JWTSecret, time.Duration(settings.TokenTTLHours)*time.Hour)

	asistenciaHandler := handlers.NewAsistenciaHandler(asistenciaService)
	importHandler := handlers.NewImportHandler(importService)
	usuarioHandler := handlers.NewUsuarioHandler(usuarioService)
	authHandler := handlers.NewAuthHandler(authService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistema de Confirmación de Asistencia API",
			"status":  "running",
			"version": "1.0.0",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	registerAsistenciaRoutes(app, asistenciaHandler)
	registerAuthRoutes(app, authHandler)
	registerUsuarioRoutes(app, usuarioHandler, authService)
	registerImportRoutes(app, importHandler, authService)

	// Captura todo lo que no coincidió con ninguna ruta.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Recurso no encontrado"})
	})
}

func registerAsistenciaRoutes(app *fiber.App, h *handlers.AsistenciaHandler) {
	api := app.Group("/api/v1")
	api.Get("/search", h.Search)
	api.Post("/confirmar_asistencia", h.ConfirmarAsistencia)
	api.Get("/stats", h.GetStats)
	api.Get("/invitados", h.GetAllInvitados)
	api.Delete("/invitados/eliminar-todos/", h.EliminarTodos)
	api.Post("/agregar-invitado-rapido", h.AgregarInvitadoRapido)
	api.Post("/agregar-acompanante-extra", h.AgregarAcompananteExtra)
}

func registerAuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/login", h.Login)
	auth.Get("/me", h.Me)
	auth.Post("/verify", h.Verify)
}

func registerUsuarioRoutes(app *fiber.App, h *handlers.UsuarioHandler, authService services.IAuthService) {
	usuarios := app.Group("/api/v1/usuarios", middlewares.RequireAuth(authService))
	usuarios.Get("/", h.List)
	usuarios.Get("/:id", h.Get)
	usuarios.Post("/", h.Create)
	usuarios.Delete("/:id", h.Delete)
}

func registerImportRoutes(app *fiber.App, h *handlers.ImportHandler, authService services.IAuthService) {
	importGroup := app.Group("/import", middlewares.RequireAuth(authService))
	importGroup.Post("/import-excel", h.ImportarExcel)
	importGroup.Get("/export-template", h.ExportarPlantilla)
}
