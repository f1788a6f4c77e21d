package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is a partial payment against a receta. Pagos are immutable once
// created — the only mutation is deletion. Neto() is the amount that counts
// against the receta balance and toward caja totals and comisiones.
type Pago struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MetodoPago string          `gorm:"type:varchar(50);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Descuento is a percentage 0–100. A first payment whose discount was
	// folded into Receta.Total is stored with Descuento = 0 and its Monto
	// already reduced by the same factor.
	Descuento decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Fecha     time.Time       `gorm:"type:date;not null;index"`
	CreatedAt time.Time

	Receta *Receta `gorm:"foreignKey:RecetaID"`
}

var cien = decimal.NewFromInt(100)

// Neto returns monto * (1 - descuento/100).
func (p *Pago) Neto() decimal.Decimal {
	return p.Monto.Mul(cien.Sub(p.Descuento)).Div(cien)
}
