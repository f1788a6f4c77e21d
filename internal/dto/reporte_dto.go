package dto

import "github.com/shopspring/decimal"

// ─── Comisiones ──────────────────────────────────────────────────────────────

type ComisionItem struct {
	MedicoID    string          `json:"medico_id"`
	Medico      string          `json:"medico"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
	NetoCobrado decimal.Decimal `json:"neto_cobrado"`
	Comision    decimal.Decimal `json:"comision"`
}

type ComisionesResponse struct {
	Desde   string          `json:"desde"`
	Hasta   string          `json:"hasta"`
	Detalle []ComisionItem  `json:"detalle"`
	Total   decimal.Decimal `json:"total"`
}

// ─── Reportes ────────────────────────────────────────────────────────────────

type ReporteDiarioResponse struct {
	Fecha    string          `json:"fecha"`
	Ingresos MontosPorMetodo `json:"ingresos"`
	Gastos   decimal.Decimal `json:"gastos"`
	Balance  decimal.Decimal `json:"balance"`
}

type ReporteDiaItem struct {
	Fecha    string          `json:"fecha"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Gastos   decimal.Decimal `json:"gastos"`
}

type ReporteMensualResponse struct {
	Anio          int              `json:"anio"`
	Mes           int              `json:"mes"`
	Dias          []ReporteDiaItem `json:"dias"`
	IngresosTotal decimal.Decimal  `json:"ingresos_total"`
	GastosTotal   decimal.Decimal  `json:"gastos_total"`
	Comisiones    decimal.Decimal  `json:"comisiones"`
	Balance       decimal.Decimal  `json:"balance"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type DashboardResponse struct {
	BajoStock  []ProductoResponse `json:"bajo_stock"`
	RecetasMes int64              `json:"recetas_mes"`
	Comisiones ComisionesResponse `json:"comisiones_mes"`
	CajaHoy    *CajaDiaResponse   `json:"caja_hoy"`
}
