package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IInvitadoRepository operaciones de base de datos sobre invitados.
type IInvitadoRepository interface {
	Create(ctx context.Context, invitado *models.Invitado) error
	FindByID(ctx context.Context, id uint) (*models.Invitado, error)
	FindByCedula(ctx context.Context, cedula string) (*models.Invitado, error)
	SearchByCedulaONombre(ctx context.Context, query string) (*models.Invitado, error)
	FindAll(ctx context.Context) ([]models.Invitado, error)
	SetEstadoAsistencia(ctx context.Context, id uint, estado bool) error
	Count(ctx context.Context) (int64, error)
	CountConfirmados(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// InvitadoRepository implementa IInvitadoRepository sobre GORM.
type InvitadoRepository struct {
	db *gorm.DB
}

// NewInvitadoRepository crea un repositorio sobre el handle dado.
func NewInvitadoRepository(db *gorm.DB) IInvitadoRepository {
	return &InvitadoRepository{db: db}
}

// NewInvitadoRepositoryTx variante para usar dentro de una transacción.
func NewInvitadoRepositoryTx(tx *gorm.DB) IInvitadoRepository {
	return &InvitadoRepository{db: tx}
}

func (r *InvitadoRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *InvitadoRepository) Create(ctx context.Context, invitado *models.Invitado) error {
	if invitado == nil || invitado.Cedula == "" {
		return errors.New("no se puede crear un invitado sin cédula")
	}
	return r.getDB(ctx).Create(invitado).Error
}

// FindByID devuelve el invitado con sus acompañantes precargados.
func (r *InvitadoRepository) FindByID(ctx context.Context, id uint) (*models.Invitado, error) {
	if id == 0 {
		return nil, errors.New("ID de invitado inválido")
	}
	var invitado models.Invitado
	err := r.getDB(ctx).Preload("Acompanantes").First(&invitado, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitadoRepository.FindByID: error de BD", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &invitado, nil
}

func (r *InvitadoRepository) FindByCedula(ctx context.Context, cedula string) (*models.Invitado, error) {
	if cedula == "" {
		return nil, ErrNotFound
	}
	var invitado models.Invitado
	err := r.getDB(ctx).Preload("Acompanantes").Where("cedula = ?", cedula).First(&invitado).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitadoRepository.FindByCedula: error de BD", zap.String("cedula", cedula), zap.Error(err))
		return nil, err
	}
	return &invitado, nil
}

// SearchByCedulaONombre busca por cédula exacta o por coincidencia parcial
// de nombre sin distinguir mayúsculas. Devuelve la primera fila según el
// orden natural por id, estable para un estado fijo de la tabla.
func (r *InvitadoRepository) SearchByCedulaONombre(ctx context.Context, query string) (*models.Invitado, error) {
	var invitado models.Invitado
	patron := "%" + strings.ToLower(query) + "%"
	err := r.getDB(ctx).Preload("Acompanantes").
		Where("cedula = ? OR LOWER(nombre) LIKE ?", query, patron).
		Order("id").
		First(&invitado).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitadoRepository.SearchByCedulaONombre: error de BD", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return &invitado, nil
}

func (r *InvitadoRepository) FindAll(ctx context.Context) ([]models.Invitado, error) {
	var invitados []models.Invitado
	err := r.getDB(ctx).Preload("Acompanantes").Order("id").Find(&invitados).Error
	if err != nil {
		configslog.Log.Error("InvitadoRepository.FindAll: error de BD", zap.Error(err))
		return nil, err
	}
	return invitados, nil
}

// SetEstadoAsistencia actualiza solo la bandera de asistencia.
func (r *InvitadoRepository) SetEstadoAsistencia(ctx context.Context, id uint, estado bool) error {
	result := r.getDB(ctx).Model(&models.Invitado{}).Where("id = ?", id).
		Update("estado_asistencia", estado)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InvitadoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Invitado{}).Count(&count).Error
	return count, err
}

func (r *InvitadoRepository) CountConfirmados(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Invitado{}).Where("estado_asistencia = ?", true).Count(&count).Error
	return count, err
}

// DeleteAll borra todos los invitados y devuelve cuántos eliminó.
func (r *InvitadoRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.getDB(ctx).Where("1 = 1").Delete(&models.Invitado{})
	return result.RowsAffected, result.Error
}

var _ IInvitadoRepository = (*InvitadoRepository)(nil)
