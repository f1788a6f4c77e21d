package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarPagoRequest struct {
	MetodoPago string          `json:"metodo_pago" validate:"required,min=3"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Descuento  decimal.Decimal `json:"descuento"   validate:"min=0,max=100"`
	Fecha      string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoResponse struct {
	ID         string          `json:"id"`
	RecetaID   string          `json:"receta_id"`
	MetodoPago string          `json:"metodo_pago"`
	Monto      decimal.Decimal `json:"monto"`
	Descuento  decimal.Decimal `json:"descuento"`
	Neto       decimal.Decimal `json:"neto"`
	Fecha      string          `json:"fecha"`
}

// EstadoCuentaResponse is the running account of a receta: its (possibly
// discounted) total, the net collected so far, and the outstanding balance.
type EstadoCuentaResponse struct {
	RecetaID string          `json:"receta_id"`
	Total    decimal.Decimal `json:"total"`
	Pagado   decimal.Decimal `json:"pagado"`
	Saldo    decimal.Decimal `json:"saldo"`
	Pagos    []PagoResponse  `json:"pagos"`
}
