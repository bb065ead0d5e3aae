package configsdatabase

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB abre la conexión GORM hacia PostgreSQL y devuelve el handle.
// El handle se inyecta explícitamente en repositorios y servicios; no se
// mantiene estado global de conexión.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		configslog.Log.Error("No se pudo conectar a la base de datos", zap.Error(err))
		return nil, err
	}
	configslog.SLog.Info("Conexión a la base de datos establecida")
	return db, nil
}

// CloseDB cierra la conexión subyacente del pool.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Warn("No se pudo obtener la conexión subyacente para cerrarla", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Warn("Error al cerrar la conexión a la base de datos", zap.Error(err))
	}
}
