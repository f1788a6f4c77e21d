package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo         string          `json:"codigo"          validate:"required,min=1,max=20"`
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=100"`
	Descripcion    *string         `json:"descripcion"`
	Categoria      string          `json:"categoria"       validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required,gt=0"`
	Cantidad       int             `json:"cantidad"        validate:"min=0"`
	StockMinimo    int             `json:"stock_minimo"    validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre         string          `json:"nombre"          validate:"required,min=2,max=100"`
	Descripcion    *string         `json:"descripcion"`
	Categoria      string          `json:"categoria"       validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required,gt=0"`
	StockMinimo    int             `json:"stock_minimo"    validate:"min=0"`
}

// AjustarStockRequest applies a manual delta to cantidad (recounts, breakage).
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProductoFilter struct {
	Q         string // free text over codigo / nombre
	Categoria string
	Page      int
	Limit     int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID             string          `json:"id"`
	Codigo         string          `json:"codigo"`
	Nombre         string          `json:"nombre"`
	Descripcion    *string         `json:"descripcion"`
	Categoria      string          `json:"categoria"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	StockMinimo    int             `json:"stock_minimo"`
	BajoStock      bool            `json:"bajo_stock"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
