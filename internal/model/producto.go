package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a stock item, typically an eyeglass frame (armazón).
// Cantidad only changes through explicit stock adjustments and through
// receta linkage: linking a receta reserves exactly one unit.
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo         string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"index;not null"`
	Descripcion    *string
	Categoria      string          `gorm:"not null;default:'armazon'"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cantidad       int             `gorm:"not null;default:0"`
	StockMinimo    int             `gorm:"not null;default:3"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
