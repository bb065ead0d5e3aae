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

// IAcompananteRepository operaciones de base de datos sobre acompañantes.
type IAcompananteRepository interface {
	Create(ctx context.Context, acompanante *models.Acompanante) error
	FindByCedula(ctx context.Context, cedula string) (*models.Acompanante, error)
	SearchByCedulaONombre(ctx context.Context, query string) (*models.Acompanante, error)
	FindByIDsDeInvitado(ctx context.Context, ids []uint, invitadoID uint) ([]models.Acompanante, error)
	SetEstadoAsistencia(ctx context.Context, id uint, estado bool) error
	Count(ctx context.Context) (int64, error)
	CountConfirmados(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// AcompananteRepository implementa IAcompananteRepository sobre GORM.
type AcompananteRepository struct {
	db *gorm.DB
}

// NewAcompananteRepository crea un repositorio sobre el handle dado.
func NewAcompananteRepository(db *gorm.DB) IAcompananteRepository {
	return &AcompananteRepository{db: db}
}

// NewAcompananteRepositoryTx variante para usar dentro de una transacción.
func NewAcompananteRepositoryTx(tx *gorm.DB) IAcompananteRepository {
	return &AcompananteRepository{db: tx}
}

func (r *AcompananteRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *AcompananteRepository) Create(ctx context.Context, acompanante *models.Acompanante) error {
	if acompanante == nil || acompanante.Cedula == "" || acompanante.InvitadoID == 0 {
		return errors.New("no se puede crear un acompañante sin cédula o sin invitado")
	}
	return r.getDB(ctx).Create(acompanante).Error
}

func (r *AcompananteRepository) FindByCedula(ctx context.Context, cedula string) (*models.Acompanante, error) {
	if cedula == "" {
		return nil, ErrNotFound
	}
	var acompanante models.Acompanante
	err := r.getDB(ctx).Where("cedula = ?", cedula).First(&acompanante).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AcompananteRepository.FindByCedula: error de BD", zap.String("cedula", cedula), zap.Error(err))
		return nil, err
	}
	return &acompanante, nil
}

// SearchByCedulaONombre misma búsqueda dual que en invitados; se usa como
// segundo intento cuando la consulta no resuelve a ningún invitado.
func (r *AcompananteRepository) SearchByCedulaONombre(ctx context.Context, query string) (*models.Acompanante, error) {
	var acompanante models.Acompanante
	patron := "%" + strings.ToLower(query) + "%"
	err := r.getDB(ctx).
		Where("cedula = ? OR LOWER(nombre) LIKE ?", query, patron).
		Order("id").
		First(&acompanante).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AcompananteRepository.SearchByCedulaONombre: error de BD", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return &acompanante, nil
}

// FindByIDsDeInvitado devuelve solo los acompañantes de la lista que
// realmente pertenecen al invitado indicado.
func (r *AcompananteRepository) FindByIDsDeInvitado(ctx context.Context, ids []uint, invitadoID uint) ([]models.Acompanante, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var acompanantes []models.Acompanante
	err := r.getDB(ctx).
		Where("id IN ? AND invitado_id = ?", ids, invitadoID).
		Find(&acompanantes).Error
	if err != nil {
		configslog.Log.Error("AcompananteRepository.FindByIDsDeInvitado: error de BD",
			zap.Uint("invitado_id", invitadoID), zap.Error(err))
		return nil, err
	}
	return acompanantes, nil
}

// SetEstadoAsistencia actualiza solo la bandera de asistencia.
func (r *AcompananteRepository) SetEstadoAsistencia(ctx context.Context, id uint, estado bool) error {
	result := r.getDB(ctx).Model(&models.Acompanante{}).Where("id = ?", id).
		Update("estado_asistencia", estado)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AcompananteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Acompanante{}).Count(&count).Error
	return count, err
}

func (r *AcompananteRepository) CountConfirmados(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Acompanante{}).Where("estado_asistencia = ?", true).Count(&count).Error
	return count, err
}

// DeleteAll borra todos los acompañantes y devuelve cuántos eliminó.
func (r *AcompananteRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.getDB(ctx).Where("1 = 1").Delete(&models.Acompanante{})
	return result.RowsAffected, result.Error
}

var _ IAcompananteRepository = (*AcompananteRepository)(nil)
