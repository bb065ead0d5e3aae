package models

import "time"

// Tipos de persona registrables en el log de asistencia.
const (
	TipoPrincipal   = "principal"
	TipoAcompanante = "acompanante"
)

// AsistenciaLog es el registro inmutable de una confirmación.
// Se crea una entrada por transición y nunca se actualiza ni elimina
// (salvo el borrado masivo). PersonaID referencia un Invitado o un
// Acompanante según Tipo; las entradas solo se construyen con
// NewLogPrincipal/NewLogAcompanante para que el discriminante y el id
// siempre vayan juntos.
type AsistenciaLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PersonaID uint      `gorm:"not null;index" json:"persona_id"`
	Tipo      string    `gorm:"type:varchar(20);not null;index" json:"tipo"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// NewLogPrincipal crea la entrada de log para la confirmación de un invitado.
func NewLogPrincipal(invitadoID uint) *AsistenciaLog {
	return &AsistenciaLog{PersonaID: invitadoID, Tipo: TipoPrincipal}
}

// NewLogAcompanante crea la entrada de log para la confirmación de un acompañante.
func NewLogAcompanante(acompananteID uint) *AsistenciaLog {
	return &AsistenciaLog{PersonaID: acompananteID, Tipo: TipoAcompanante}
}
