package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mrchuchi/confirmacion-asistencia/configs/configslog"
	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UsuarioServiceError errores de dominio de usuarios.
type UsuarioServiceError string

func (e UsuarioServiceError) Error() string { return string(e) }

const (
	ErrUsuarioNoEncontrado UsuarioServiceError = "usuario no encontrado"
	ErrUsernameDuplicado   UsuarioServiceError = "ya existe un usuario con este username"
	ErrUsuarioInvalido     UsuarioServiceError = "datos de usuario inválidos"
)

// Coste bcrypt del sistema original.
const bcryptCost = 12

// IUsuarioService gestión de cuentas de la aplicación.
type IUsuarioService interface {
	GetAll(ctx context.Context) ([]models.Usuario, error)
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	Create(ctx context.Context, req models.UsuarioCreateRequest) (*models.Usuario, error)
	Delete(ctx context.Context, id uint) error
}

// UsuarioService implementa IUsuarioService.
type UsuarioService struct {
	repo repositories.IUsuarioRepository
}

// NewUsuarioService crea el servicio sobre el handle de BD dado.
func NewUsuarioService(db *gorm.DB) IUsuarioService {
	return &UsuarioService{repo: repositories.NewUsuarioRepository(db)}
}

func (s *UsuarioService) GetAll(ctx context.Context) ([]models.Usuario, error) {
	return s.repo.FindAll(ctx)
}

func (s *UsuarioService) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return usuario, nil
}

func (s *UsuarioService) Create(ctx context.Context, req models.UsuarioCreateRequest) (*models.Usuario, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.NombreCompleto = strings.TrimSpace(req.NombreCompleto)
	if req.Username == "" || req.Password == "" || req.NombreCompleto == "" {
		return nil, fmt.Errorf("%w: username, password y nombre completo son obligatorios", ErrUsuarioInvalido)
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameDuplicado
	} else if err != repositories.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	usuario := &models.Usuario{
		Username:       req.Username,
		HashedPassword: string(hash),
		NombreCompleto: req.NombreCompleto,
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Usuario %s creado (ID %d)", usuario.Username, usuario.ID)
	return usuario, nil
}

func (s *UsuarioService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return ErrUsuarioNoEncontrado
		}
		return err
	}
	return nil
}

var _ IUsuarioService = (*UsuarioService)(nil)
