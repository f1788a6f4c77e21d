package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta is an optical prescription / work order. Total is the authoritative
// balance basis: it is reduced IN PLACE, at most once, when the first pago
// carries a discount (DescuentoAplicado guards the fold so it cannot run a
// second time even after every pago is deleted).
type Receta struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	MedicoID          *uuid.UUID `gorm:"type:uuid;index"`
	Fecha             time.Time  `gorm:"type:date;not null;index"`
	TipoLente         *string
	MedidaOD          *string `gorm:"column:medida_od"`
	MedidaOS          *string `gorm:"column:medida_os"`
	Observaciones     *string
	Total             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DescuentoAplicado bool            `gorm:"not null;default:false"`
	// ArmazonID reserves one unit of the linked Producto while set.
	ArmazonID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Paciente *Paciente `gorm:"foreignKey:PacienteID"`
	Medico   *Medico   `gorm:"foreignKey:MedicoID"`
	Armazon  *Producto `gorm:"foreignKey:ArmazonID"`
	Pagos    []Pago    `gorm:"foreignKey:RecetaID"`
}
