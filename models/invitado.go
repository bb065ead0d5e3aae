package models

// Invitado es el invitado principal de la lista del evento.
// La cédula es única entre invitados; la unicidad la garantiza la base.
type Invitado struct {
	BaseModel
	Nombre           string  `gorm:"type:varchar(255);not null;index" json:"nombre"`
	Cedula           string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"cedula"`
	CampanaArea      *string `gorm:"type:varchar(255);index" json:"campana_area"`
	EPS              *string `gorm:"type:varchar(255);index" json:"eps"`
	Sede             *string `gorm:"type:varchar(255);index" json:"sede"`
	EstadoAsistencia bool    `gorm:"not null;default:false" json:"estado_asistencia"`

	// Relación de propiedad: al eliminar el invitado caen sus acompañantes.
	Acompanantes []Acompanante `gorm:"foreignKey:InvitadoID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"acompanantes"`
}
