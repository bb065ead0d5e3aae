package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AsistenciaServiceError errores de dominio del servicio de asistencia.
type AsistenciaServiceError string

func (e AsistenciaServiceError) Error() string { return string(e) }

const (
	ErrInvitadoNoEncontrado       AsistenciaServiceError = "invitado no encontrado"
	ErrConsultaVacia              AsistenciaServiceError = "la consulta de búsqueda no puede estar vacía"
	ErrCedulaInvitadoDuplicada    AsistenciaServiceError = "ya existe un invitado con esta cédula"
	ErrCedulaAcompananteDuplicada AsistenciaServiceError = "ya existe un acompañante con esta cédula"
	ErrDatosInvalidos             AsistenciaServiceError = "datos de entrada inválidos"
	ErrConfirmacionFallida        AsistenciaServiceError = "error al confirmar asistencia"
	ErrEliminacionFallida         AsistenciaServiceError = "error al eliminar los registros"
)

// IAsistenciaService lógica de búsqueda, confirmación y estadísticas.
type IAsistenciaService interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
	ConfirmarAsistencia(ctx context.Context, req models.ConfirmarAsistenciaRequest) (*models.ConfirmarAsistenciaResponse, error)
	GetStats(ctx context.Context) (*models.Stats, error)
	GetAllInvitados(ctx context.Context) ([]models.Invitado, error)
	EliminarTodos(ctx context.Context) (*models.EliminadosResult, error)
	AgregarInvitadoRapido(ctx context.Context, nombre, cedula string) (*models.Invitado, error)
	AgregarAcompananteExtra(ctx context.Context, invitadoID uint, nombre, cedula string) (*models.Acompanante, error)
}

// AsistenciaService implementa IAsistenciaService.
type AsistenciaService struct {
	db              *gorm.DB
	invitadoRepo    repositories.IInvitadoRepository
	acompananteRepo repositories.IAcompananteRepository
	logRepo         repositories.IAsistenciaLogRepository
}

// NewAsistenciaService crea el servicio sobre el handle de BD dado.
func NewAsistenciaService(db *gorm.DB) IAsistenciaService {
	return &AsistenciaService{
		db:              db,
		invitadoRepo:    repositories.NewInvitadoRepository(db),
		acompananteRepo: repositories.NewAcompananteRepository(db),
		logRepo:         repositories.NewAsistenciaLogRepository(db),
	}
}

// Search busca un invitado por cédula exacta o nombre parcial. Si la
// consulta no resuelve a ningún invitado, intenta la misma búsqueda
// entre los acompañantes y resuelve a su invitado titular. Operación de
// solo lectura, sin efectos secundarios.
func (s *AsistenciaService) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrConsultaVacia
	}

	invitado, err := s.invitadoRepo.SearchByCedulaONombre(ctx, query)
	if err != nil && err != repositories.ErrNotFound {
		return nil, err
	}

	if invitado == nil {
		acompanante, aErr := s.acompananteRepo.SearchByCedulaONombre(ctx, query)
		if aErr != nil {
			if aErr == repositories.ErrNotFound {
				return nil, ErrInvitadoNoEncontrado
			}
			return nil, aErr
		}
		invitado, err = s.invitadoRepo.FindByID(ctx, acompanante.InvitadoID)
		if err != nil {
			if err == repositories.ErrNotFound {
				// Acompañante huérfano; para el buscador equivale a no encontrado.
				configslog.Log.Warn("Search: acompañante sin invitado titular",
					zap.Uint("acompanante_id", acompanante.ID), zap.Uint("invitado_id", acompanante.InvitadoID))
				return nil, ErrInvitadoNoEncontrado
			}
			return nil, err
		}
	}

	confirmada := invitado.EstadoAsistencia
	for _, acomp := range invitado.Acompanantes {
		confirmada = confirmada && acomp.EstadoAsistencia
	}

	return &models.SearchResponse{
		Invitado:             *invitado,
		TotalPersonas:        1 + len(invitado.Acompanantes),
		AsistenciaConfirmada: confirmada,
	}, nil
}

// ConfirmarAsistencia marca como confirmados al invitado y a los
// acompañantes indicados, de forma idempotente por persona: solo las
// transiciones reales false→true cuentan y generan entrada de log.
// Acompañantes ajenos al invitado o ya confirmados se omiten en
// silencio. Toda la llamada corre en una única transacción.
func (s *AsistenciaService) ConfirmarAsistencia(ctx context.Context, req models.ConfirmarAsistenciaRequest) (*models.ConfirmarAsistenciaResponse, error) {
	if req.InvitadoID == 0 {
		return nil, fmt.Errorf("%w: ID de invitado requerido", ErrDatosInvalidos)
	}

	confirmadas := 0
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		invitadoRepoTx := repositories.NewInvitadoRepositoryTx(tx)
		acompananteRepoTx := repositories.NewAcompananteRepositoryTx(tx)
		logRepoTx := repositories.NewAsistenciaLogRepositoryTx(tx)

		invitado, err := invitadoRepoTx.FindByID(ctx, req.InvitadoID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return ErrInvitadoNoEncontrado
			}
			return err
		}

		if !invitado.EstadoAsistencia {
			if err := invitadoRepoTx.SetEstadoAsistencia(ctx, invitado.ID, true); err != nil {
				return err
			}
			if err := logRepoTx.Create(ctx, models.NewLogPrincipal(invitado.ID)); err != nil {
				return err
			}
			confirmadas++
		}

		acompanantes, err := acompananteRepoTx.FindByIDsDeInvitado(ctx, req.AcompanantesIDs, req.InvitadoID)
		if err != nil {
			return err
		}
		for _, acomp := range acompanantes {
			if acomp.EstadoAsistencia {
				continue
			}
			if err := acompananteRepoTx.SetEstadoAsistencia(ctx, acomp.ID, true); err != nil {
				return err
			}
			if err := logRepoTx.Create(ctx, models.NewLogAcompanante(acomp.ID)); err != nil {
				return err
			}
			confirmadas++
		}
		return nil
	})
	if txErr != nil {
		if txErr == ErrInvitadoNoEncontrado {
			return nil, txErr
		}
		configslog.Log.Error("ConfirmarAsistencia: transacción fallida",
			zap.Uint("invitado_id", req.InvitadoID), zap.Error(txErr))
		return nil, fmt.Errorf("%w: %v", ErrConfirmacionFallida, txErr)
	}

	return &models.ConfirmarAsistenciaResponse{
		Success:             true,
		Message:             fmt.Sprintf("Asistencia confirmada para %d persona(s)", confirmadas),
		PersonasConfirmadas: confirmadas,
	}, nil
}

// GetStats agregados de asistencia. Consulta pura, sin mutaciones.
func (s *AsistenciaService) GetStats(ctx context.Context) (*models.Stats, error) {
	totalInvitados, err := s.invitadoRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	invitadosConfirmados, err := s.invitadoRepo.CountConfirmados(ctx)
	if err != nil {
		return nil, err
	}
	totalAcompanantes, err := s.acompananteRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	acompanantesConfirmados, err := s.acompananteRepo.CountConfirmados(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Stats{
		TotalInvitados:          totalInvitados,
		InvitadosConfirmados:    invitadosConfirmados,
		TotalAcompanantes:       totalAcompanantes,
		AcompanantesConfirmados: acompanantesConfirmados,
		TotalPersonas:           totalInvitados + totalAcompanantes,
		PersonasConfirmadas:     invitadosConfirmados + acompanantesConfirmados,
	}, nil
}

// GetAllInvitados lista completa con acompañantes anidados.
func (s *AsistenciaService) GetAllInvitados(ctx context.Context) ([]models.Invitado, error) {
	return s.invitadoRepo.FindAll(ctx)
}

// EliminarTodos borra logs, acompañantes e invitados en una sola
// transacción y devuelve los conteos eliminados. Irreversible.
func (s *AsistenciaService) EliminarTodos(ctx context.Context) (*models.EliminadosResult, error) {
	var result models.EliminadosResult
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if result.Logs, err = repositories.NewAsistenciaLogRepositoryTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if result.Acompanantes, err = repositories.NewAcompananteRepositoryTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if result.Invitados, err = repositories.NewInvitadoRepositoryTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Error("EliminarTodos: transacción fallida", zap.Error(txErr))
		return nil, fmt.Errorf("%w: %v", ErrEliminacionFallida, txErr)
	}
	configslog.SLog.Infof("Borrado masivo completado: %d invitados, %d acompañantes, %d logs",
		result.Invitados, result.Acompanantes, result.Logs)
	return &result, nil
}

// AgregarInvitadoRapido alta de un invitado no previsto en la lista.
// Se crea ya confirmado y con su entrada de log.
func (s *AsistenciaService) AgregarInvitadoRapido(ctx context.Context, nombre, cedula string) (*models.Invitado, error) {
	nombre = strings.TrimSpace(nombre)
	cedula = strings.TrimSpace(cedula)
	if nombre == "" || cedula == "" {
		return nil, fmt.Errorf("%w: nombre y cédula son obligatorios", ErrDatosInvalidos)
	}

	if _, err := s.invitadoRepo.FindByCedula(ctx, cedula); err == nil {
		return nil, ErrCedulaInvitadoDuplicada
	} else if err != repositories.ErrNotFound {
		return nil, err
	}

	invitado := &models.Invitado{
		Nombre:           nombre,
		Cedula:           cedula,
		EstadoAsistencia: true,
	}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewInvitadoRepositoryTx(tx).Create(ctx, invitado); err != nil {
			return err
		}
		return repositories.NewAsistenciaLogRepositoryTx(tx).Create(ctx, models.NewLogPrincipal(invitado.ID))
	})
	if txErr != nil {
		configslog.Log.Error("AgregarInvitadoRapido: transacción fallida", zap.String("cedula", cedula), zap.Error(txErr))
		return nil, txErr
	}
	configslog.SLog.Infof("Invitado %s agregado y confirmado (ID %d)", invitado.Nombre, invitado.ID)
	return invitado, nil
}

// AgregarAcompananteExtra alta de un acompañante extra para un invitado
// existente. Se crea ya confirmado y con su entrada de log.
func (s *AsistenciaService) AgregarAcompananteExtra(ctx context.Context, invitadoID uint, nombre, cedula string) (*models.Acompanante, error) {
	nombre = strings.TrimSpace(nombre)
	cedula = strings.TrimSpace(cedula)
	if invitadoID == 0 || nombre == "" || cedula == "" {
		return nil, fmt.Errorf("%w: invitado, nombre y cédula son obligatorios", ErrDatosInvalidos)
	}

	if _, err := s.invitadoRepo.FindByID(ctx, invitadoID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrInvitadoNoEncontrado
		}
		return nil, err
	}
	if _, err := s.acompananteRepo.FindByCedula(ctx, cedula); err == nil {
		return nil, ErrCedulaAcompananteDuplicada
	} else if err != repositories.ErrNotFound {
		return nil, err
	}

	acompanante := &models.Acompanante{
		InvitadoID:       invitadoID,
		Nombre:           nombre,
		Cedula:           cedula,
		EstadoAsistencia: true,
	}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewAcompananteRepositoryTx(tx).Create(ctx, acompanante); err != nil {
			return err
		}
		return repositories.NewAsistenciaLogRepositoryTx(tx).Create(ctx, models.NewLogAcompanante(acompanante.ID))
	})
	if txErr != nil {
		configslog.Log.Error("AgregarAcompananteExtra: transacción fallida", zap.String("cedula", cedula), zap.Error(txErr))
		return nil, txErr
	}
	configslog.SLog.Infof("Acompañante %s agregado y confirmado (ID %d)", acompanante.Nombre, acompanante.ID)
	return acompanante, nil
}

var _ IAsistenciaService = (*AsistenciaService)(nil)
