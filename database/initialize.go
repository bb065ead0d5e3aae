package database

import (
	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/database/migrations"
	"github.com/Mrchuchi/confirmacion-asistencia/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize ejecuta migraciones y seeders según los flags recibidos.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Sin flags de migrate o seed, no se inicializa la base de datos.")
		return nil
	}

	configslog.SLog.Info("Iniciando la base de datos...")

	if migrate {
		configslog.SLog.Info("Ejecutando migraciones...")
		if err := RunMigrationsInOrder(db); err != nil {
			configslog.Log.Error("Migraciones fallidas", zap.Error(err))
			return err
		}
		configslog.SLog.Info("Migraciones completadas.")
	}

	if seed {
		configslog.SLog.Info("Ejecutando seeders...")
		if err := seeders.SeedAdminUsuario(db); err != nil {
			configslog.Log.Error("Seeding fallido", zap.Error(err))
			return err
		}
		configslog.SLog.Info("Seeders completados.")
	}

	configslog.SLog.Info("Base de datos inicializada correctamente")
	return nil
}

// RunMigrationsInOrder corre las migraciones respetando las dependencias
// entre tablas (los acompañantes referencian a los invitados).
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigrateUsuariosTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateInvitadosTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateAcompanantesTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateAsistenciaLogsTable(db); err != nil {
		return err
	}
	return nil
}
