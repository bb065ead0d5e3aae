package migrations

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAsistenciaLogsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating asistencia_logs table...")
	// Sin FK hacia invitados/acompañantes: persona_id es polimórfico y se
	// discrimina por tipo. Los constructores del modelo mantienen la pareja.
	err := db.AutoMigrate(&models.AsistenciaLog{})
	if err != nil {
		configslog.Log.Error("Failed to migrate asistencia_logs table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Asistencia_logs table migrated successfully")
	return nil
}
