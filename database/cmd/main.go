package main

import (
	"flag"

	"github.com/Mrchuchi/confirmacion-asistencia/configs"
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configsdatabase"
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/database"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Ejecutar las migraciones de la base de datos")
	seedFlag := flag.Bool("seed", false, "Ejecutar los seeders de la base de datos")
	flag.Parse()

	settings := configs.LoadSettings()
	db, err := configsdatabase.InitDB(settings.DatabaseURL)
	if err != nil {
		configslog.Log.Fatal("No se pudo abrir la base de datos", zap.Error(err))
	}
	defer configsdatabase.CloseDB(db)

	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Fatal("Inicialización de la base de datos fallida", zap.Error(err))
	}
	configslog.SLog.Info("Proceso de inicialización terminado.")
}
