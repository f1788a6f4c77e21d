package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRecetaRequest struct {
	PacienteID    string          `json:"paciente_id" validate:"required,uuid"`
	MedicoID      *string         `json:"medico_id"   validate:"omitempty,uuid"`
	Fecha         string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	TipoLente     *string         `json:"tipo_lente"`
	MedidaOD      *string         `json:"medida_od"`
	MedidaOS      *string         `json:"medida_os"`
	Observaciones *string         `json:"observaciones"`
	Total         decimal.Decimal `json:"total"       validate:"required,gt=0"`
	ArmazonID     *string         `json:"armazon_id"  validate:"omitempty,uuid"`
}

// ActualizarRecetaRequest deliberately omits Total: once pagos exist the
// total only changes through the one-shot discount fold.
type ActualizarRecetaRequest struct {
	MedicoID      *string `json:"medico_id"  validate:"omitempty,uuid"`
	Fecha         string  `json:"fecha"      validate:"required,datetime=2006-01-02"`
	TipoLente     *string `json:"tipo_lente"`
	MedidaOD      *string `json:"medida_od"`
	MedidaOS      *string `json:"medida_os"`
	Observaciones *string `json:"observaciones"`
	ArmazonID     *string `json:"armazon_id" validate:"omitempty,uuid"`
}

type RecetaFilter struct {
	Q     string // free text over paciente nombre/apellido/dni
	Desde string
	Hasta string
	Page  int
	Limit int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecetaResponse struct {
	ID            string          `json:"id"`
	PacienteID    string          `json:"paciente_id"`
	Paciente      string          `json:"paciente"`
	MedicoID      *string         `json:"medico_id"`
	Medico        *string         `json:"medico"`
	Fecha         string          `json:"fecha"`
	TipoLente     *string         `json:"tipo_lente"`
	MedidaOD      *string         `json:"medida_od"`
	MedidaOS      *string         `json:"medida_os"`
	Observaciones *string         `json:"observaciones"`
	Total         decimal.Decimal `json:"total"`
	Pagado        decimal.Decimal `json:"pagado"`
	Saldo         decimal.Decimal `json:"saldo"`
	ArmazonID     *string         `json:"armazon_id"`
	Armazon       *string         `json:"armazon"`
}

type RecetaListResponse struct {
	Data  []RecetaResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
