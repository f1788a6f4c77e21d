package dto

import "github.com/shopspring/decimal"

type MedicoRequest struct {
	Nombre             string          `json:"nombre"              validate:"required,min=2,max=100"`
	Apellido           string          `json:"apellido"            validate:"required,min=2,max=100"`
	Matricula          string          `json:"matricula"           validate:"omitempty,max=50"`
	Especialidad       *string         `json:"especialidad"`
	Contacto           *string         `json:"contacto"`
	PorcentajeComision decimal.Decimal `json:"porcentaje_comision" validate:"min=0,max=100"`
}

type MedicoResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Apellido           string          `json:"apellido"`
	Matricula          string          `json:"matricula"`
	Especialidad       *string         `json:"especialidad"`
	Contacto           *string         `json:"contacto"`
	PorcentajeComision decimal.Decimal `json:"porcentaje_comision"`
}
