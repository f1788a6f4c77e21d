package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medico is a referring physician. PorcentajeComision is applied to the net
// payments collected on the medico's recetas (see ComisionService).
type Medico struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre             string    `gorm:"not null"`
	Apellido           string    `gorm:"not null"`
	Matricula          string    `gorm:"index"`
	Especialidad       *string
	Contacto           *string
	PorcentajeComision decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Recetas []Receta `gorm:"foreignKey:MedicoID"`
}
