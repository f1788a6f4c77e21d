package dto

import "github.com/shopspring/decimal"

// MontosPorMetodo breaks an amount down by payment method. General always
// includes every method, even ones outside the three canonical buckets.
type MontosPorMetodo struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
	General       decimal.Decimal `json:"general"`
}

// CajaDiaResponse is the register record for one calendar date.
// While the day is open the totals are the last frozen values (zero for a
// never-closed day); Cerrar recomputes them from the day's pagos.
type CajaDiaResponse struct {
	Fecha   string          `json:"fecha"`
	Abierta bool            `json:"abierta"`
	Totales MontosPorMetodo `json:"totales"`
}
