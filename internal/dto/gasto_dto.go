package dto

import "github.com/shopspring/decimal"

type CrearGastoRequest struct {
	Fecha       string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Categoria   string          `json:"categoria"   validate:"required,min=2"`
	Descripcion *string         `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
	Descripcion *string         `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
}
