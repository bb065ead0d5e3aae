package migrations

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAcompanantesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating acompanantes table...")
	// La tabla de invitados ya debe existir (FK con borrado en cascada).
	err := db.AutoMigrate(&models.Acompanante{})
	if err != nil {
		configslog.Log.Error("Failed to migrate acompanantes table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Acompanantes table migrated successfully")
	return nil
}
