package migrations

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateInvitadosTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating invitados table...")
	err := db.AutoMigrate(&models.Invitado{})
	if err != nil {
		configslog.Log.Error("Failed to migrate invitados table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Invitados table migrated successfully")
	return nil
}
