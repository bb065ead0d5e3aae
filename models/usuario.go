package models

// Usuario cuenta de acceso a la aplicación.
type Usuario struct {
	BaseModel
	Username       string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	HashedPassword string `gorm:"type:varchar(255);not null" json:"-"`
	NombreCompleto string `gorm:"type:varchar(255);not null" json:"nombre_completo"`
}
