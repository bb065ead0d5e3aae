package services

import (
	"os"
	"testing"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// newTestDB abre una base SQLite en memoria con el esquema migrado.
// Se limita a una conexión para que todas las consultas vean la misma
// base en memoria.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("no se pudo abrir sqlite en memoria: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("no se pudo obtener la conexión: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Usuario{}, &models.Invitado{}, &models.Acompanante{}, &models.AsistenciaLog{}); err != nil {
		t.Fatalf("no se pudo migrar el esquema: %v", err)
	}
	return db
}

func crearInvitado(t *testing.T, db *gorm.DB, nombre, cedula string, confirmado bool) *models.Invitado {
	t.Helper()
	invitado := &models.Invitado{Nombre: nombre, Cedula: cedula, EstadoAsistencia: confirmado}
	if err := db.Create(invitado).Error; err != nil {
		t.Fatalf("no se pudo crear el invitado %s: %v", cedula, err)
	}
	return invitado
}

func crearAcompanante(t *testing.T, db *gorm.DB, invitadoID uint, nombre, cedula string, confirmado bool) *models.Acompanante {
	t.Helper()
	acompanante := &models.Acompanante{
		InvitadoID: invitadoID, Nombre: nombre, Cedula: cedula, EstadoAsistencia: confirmado,
	}
	if err := db.Create(acompanante).Error; err != nil {
		t.Fatalf("no se pudo crear el acompañante %s: %v", cedula, err)
	}
	return acompanante
}

func contarLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.AsistenciaLog{}).Count(&count).Error; err != nil {
		t.Fatalf("no se pudo contar el log: %v", err)
	}
	return count
}
