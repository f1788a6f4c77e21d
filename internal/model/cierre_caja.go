package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CierreCaja is the register record for one calendar date — at most one row
// per fecha. It is created lazily (open, zero totals) the first time the
// register is consulted for a date. Cerrar freezes the per-method totals
// computed from that day's pagos; Reabrir only flips Abierta back and leaves
// the frozen totals in place.
type CierreCaja struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha              time.Time       `gorm:"type:date;uniqueIndex;not null"`
	TotalEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTarjeta       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalGeneral       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Abierta            bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
