package services

import (
	"context"
	"time"

	"github.com/Mrchuchi/confirmacion-asistencia/models"
	"github.com/Mrchuchi/confirmacion-asistencia/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError errores de autenticación.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrCredencialesInvalidas AuthServiceError = "username o contraseña incorrectos"
	ErrTokenInvalido         AuthServiceError = "token inválido"
)

// IAuthService emisión y verificación de tokens de acceso.
type IAuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(token string) (string, error)
	Me(ctx context.Context, token string) (*models.Usuario, error)
}

// AuthService implementa IAuthService con tokens JWT HS256.
type AuthService struct {
	usuarioRepo repositories.IUsuarioRepository
	secret      []byte
	ttl         time.Duration
}

// NewAuthService crea el servicio con el secreto y TTL configurados.
func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) IAuthService {
	return &AuthService{
		usuarioRepo: repositories.NewUsuarioRepository(db),
		secret:      []byte(secret),
		ttl:         ttl,
	}
}

// Login valida las credenciales y emite un token con sub=username.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	usuario, err := s.usuarioRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return "", ErrCredencialesInvalidas
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.HashedPassword), []byte(password)) != nil {
		return "", ErrCredencialesInvalidas
	}

	claims := jwt.MapClaims{
		"sub": usuario.Username,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken valida firma y expiración y devuelve el username.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalido
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalido
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalido
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return "", ErrTokenInvalido
	}
	return username, nil
}

// Me resuelve el token al usuario actual.
func (s *AuthService) Me(ctx context.Context, tokenString string) (*models.Usuario, error) {
	username, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	usuario, err := s.usuarioRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrTokenInvalido
		}
		return nil, err
	}
	return usuario, nil
}

var _ IAuthService = (*AuthService)(nil)
