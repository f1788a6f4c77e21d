package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is a miscellaneous expense, not tied to any receta.
type Gasto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha       time.Time `gorm:"type:date;not null;index"`
	Categoria   string    `gorm:"type:varchar(100)"`
	Descripcion *string
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}
