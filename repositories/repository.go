package repositories

import "errors"

// ErrNotFound se devuelve cuando la entidad buscada no existe.
// Los servicios lo traducen a sus propios errores de dominio.
var ErrNotFound = errors.New("registro no encontrado")
