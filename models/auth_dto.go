package models

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse token de acceso emitido tras un login correcto.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UsuarioCreateRequest alta de un usuario de la aplicación.
type UsuarioCreateRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	NombreCompleto string `json:"nombre_completo"`
}
