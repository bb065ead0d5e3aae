package repositories

import (
	"context"
	"errors"

	"github.com/Mrchuchi/confirmacion-asistencia/models"

	"gorm.io/gorm"
)

// IAsistenciaLogRepository operaciones sobre el log de asistencia.
// El log es de solo inserción: no hay update ni delete individual.
type IAsistenciaLogRepository interface {
	Create(ctx context.Context, entry *models.AsistenciaLog) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// AsistenciaLogRepository implementa IAsistenciaLogRepository sobre GORM.
type AsistenciaLogRepository struct {
	db *gorm.DB
}

// NewAsistenciaLogRepository crea un repositorio sobre el handle dado.
func NewAsistenciaLogRepository(db *gorm.DB) IAsistenciaLogRepository {
	return &AsistenciaLogRepository{db: db}
}

// NewAsistenciaLogRepositoryTx variante para usar dentro de una transacción.
func NewAsistenciaLogRepositoryTx(tx *gorm.DB) IAsistenciaLogRepository {
	return &AsistenciaLogRepository{db: tx}
}

func (r *AsistenciaLogRepository) Create(ctx context.Context, entry *models.AsistenciaLog) error {
	if entry == nil || entry.PersonaID == 0 {
		return errors.New("entrada de log inválida")
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AsistenciaLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AsistenciaLog{}).Count(&count).Error
	return count, err
}

// DeleteAll borra todo el log y devuelve cuántas entradas eliminó.
// Solo lo usa el borrado masivo.
func (r *AsistenciaLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.AsistenciaLog{})
	return result.RowsAffected, result.Error
}

var _ IAsistenciaLogRepository = (*AsistenciaLogRepository)(nil)
