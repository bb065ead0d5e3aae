package models

// Acompanante asiste junto a exactamente un Invitado.
// Su cédula es única dentro de la tabla de acompañantes.
type Acompanante struct {
	BaseModel
	InvitadoID       uint    `gorm:"not null;index" json:"invitado_id"`
	Nombre           string  `gorm:"type:varchar(255);not null;index" json:"nombre"`
	Cedula           string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"cedula"`
	Edad             *int    `json:"edad"`
	Parentesco       *string `gorm:"type:varchar(100);index" json:"parentesco"`
	EPS              *string `gorm:"type:varchar(255);index" json:"eps"`
	EstadoAsistencia bool    `gorm:"not null;default:false" json:"estado_asistencia"`
}
