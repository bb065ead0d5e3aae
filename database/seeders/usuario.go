package seeders

import (
	"errors"
	"os"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUsuario garantiza que exista la cuenta de administración.
// Sin ADMIN_PASSWORD en el entorno no se crea nada.
func SeedAdminUsuario(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		configslog.SLog.Warn("ADMIN_PASSWORD no definido; se omite el seed del usuario admin.")
		return nil
	}

	var existente models.Usuario
	err := db.Where("username = ?", username).First(&existente).Error
	if err == nil {
		configslog.SLog.Infof("Usuario admin '%s' ya existe, seed omitido.", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	admin := models.Usuario{
		Username:       username,
		HashedPassword: string(hash),
		NombreCompleto: "Administrador",
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("No se pudo crear el usuario admin", zap.String("username", username), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Usuario admin '%s' creado.", username)
	return nil
}
