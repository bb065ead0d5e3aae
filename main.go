package main

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs"
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configsdatabase"
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/database"
	"github.com/Mrchuchi/confirmacion-asistencia/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	settings := configs.LoadSettings()

	db, err := configsdatabase.InitDB(settings.DatabaseURL)
	if err != nil {
		configslog.Log.Fatal("No se pudo abrir la base de datos", zap.Error(err))
	}
	defer configsdatabase.CloseDB(db)

	if err := database.Initialize(db, settings.AutoMigrate, settings.AutoSeed); err != nil {
		configslog.Log.Fatal("Inicialización de la base de datos fallida", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName: "Sistema de Confirmación de Asistencia",
	})
	routes.SetupRoutes(app, db, settings)

	configslog.SLog.Infof("Servidor escuchando en el puerto %s", settings.Port)
	if err := app.Listen(":" + settings.Port); err != nil {
		configslog.Log.Fatal("El servidor terminó con error", zap.Error(err))
	}
}
