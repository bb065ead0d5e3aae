package repositories

import (
	"context"
	"errors"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUsuarioRepository operaciones de base de datos sobre usuarios.
type IUsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	FindByID(ctx context.Context, id uint) (*models.Usuario, error)
	FindByUsername(ctx context.Context, username string) (*models.Usuario, error)
	FindAll(ctx context.Context) ([]models.Usuario, error)
	Delete(ctx context.Context, id uint) error
}

// UsuarioRepository implementa IUsuarioRepository sobre GORM.
type UsuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository crea un repositorio sobre el handle dado.
func NewUsuarioRepository(db *gorm.DB) IUsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	if usuario == nil || usuario.Username == "" {
		return errors.New("no se puede crear un usuario sin username")
	}
	return r.getDB(ctx).Create(usuario).Error
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id uint) (*models.Usuario, error) {
	if id == 0 {
		return nil, errors.New("ID de usuario inválido")
	}
	var usuario models.Usuario
	err := r.getDB(ctx).First(&usuario, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UsuarioRepository.FindByID: error de BD", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &usuario, nil
}

func (r *UsuarioRepository) FindByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	if username == "" {
		return nil, ErrNotFound
	}
	var usuario models.Usuario
	err := r.getDB(ctx).Where("username = ?", username).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UsuarioRepository.FindByUsername: error de BD", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &usuario, nil
}

func (r *UsuarioRepository) FindAll(ctx context.Context) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	err := r.getDB(ctx).Order("id").Find(&usuarios).Error
	if err != nil {
		configslog.Log.Error("UsuarioRepository.FindAll: error de BD", zap.Error(err))
		return nil, err
	}
	return usuarios, nil
}

func (r *UsuarioRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&models.Usuario{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IUsuarioRepository = (*UsuarioRepository)(nil)
