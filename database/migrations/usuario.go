package migrations

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateUsuariosTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating usuarios table...")
	err := db.AutoMigrate(&models.Usuario{})
	if err != nil {
		configslog.Log.Error("Failed to migrate usuarios table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Usuarios table migrated successfully")
	return nil
}
