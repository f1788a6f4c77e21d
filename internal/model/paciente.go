package model

import (
	"time"

	"github.com/google/uuid"
)

type Paciente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	Apellido        string    `gorm:"index;not null"`
	DNI             string    `gorm:"column:dni;index"`
	FechaNacimiento *time.Time
	ObraSocial      *string
	Contacto        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Recetas []Receta `gorm:"foreignKey:PacienteID"`
}
