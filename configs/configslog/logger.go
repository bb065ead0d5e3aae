package configslog

import (
	"os"

	"go.uber.org/zap"
)

// Log es el logger estructurado global; SLog su variante sugared.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger inicializa los loggers globales. En modo debug usa la
// configuración de desarrollo (salida legible, nivel debug).
func InitLogger() {
	var err error
	if os.Getenv("APP_DEBUG") == "false" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("no se pudo inicializar el logger: " + err.Error())
	}
	SLog = Log.Sugar()
}

// SyncLogger vacía los buffers pendientes; llamar con defer desde main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
