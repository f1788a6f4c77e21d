package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Nikise23/optica-mia/internal/apierror"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc        service.ReporteService
	comisiones service.ComisionService
}

func NewReportesHandler(svc service.ReporteService, comisiones service.ComisionService) *ReportesHandler {
	return &ReportesHandler{svc: svc, comisiones: comisiones}
}

// Diario godoc
// @Summary      Reporte diario
// @Description  Ingresos netos por método, gastos y balance del día.
// @Tags         reportes
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200   {object} dto.ReporteDiarioResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/reportes/diario/{fecha} [get]
func (h *ReportesHandler) Diario(c *gin.Context) {
	fecha, ok := parseFecha(c)
	if !ok {
		return
	}
	resp, err := h.svc.Diario(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarDiario godoc
// @Summary      Exportar los movimientos de un día como CSV
// @Description  Una fila por pago (neto, positivo) y por gasto (negativo), con paciente, médico y método.
// @Tags         reportes
// @Produce      text/csv
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/diario/{fecha}/export [get]
func (h *ReportesHandler) ExportarDiario(c *gin.Context) {
	fecha, ok := parseFecha(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="movimientos_`+fecha.Format("2006-01-02")+`.csv"`)
	if err := h.svc.ExportarDia(c.Request.Context(), fecha, c.Writer); err != nil {
		// Headers may already be written; log and abort.
		respondError(c, err)
		return
	}
}

// Mensual godoc
// @Summary      Reporte mensual
// @Description  Ingresos y gastos por día del mes, totales y balance neto de comisiones.
// @Tags         reportes
// @Produce      json
// @Param        anio path int true "Año, p.ej. 2026"
// @Param        mes  path int true "Mes 1-12"
// @Success      200  {object} dto.ReporteMensualResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reportes/mensual/{anio}/{mes} [get]
func (h *ReportesHandler) Mensual(c *gin.Context) {
	anio, err := strconv.Atoi(c.Param("anio"))
	if err != nil || anio < 2000 || anio > 2100 {
		c.JSON(http.StatusBadRequest, apierror.New("Anio invalido"))
		return
	}
	mes, err := strconv.Atoi(c.Param("mes"))
	if err != nil || mes < 1 || mes > 12 {
		c.JSON(http.StatusBadRequest, apierror.New("Mes invalido, se espera 1-12"))
		return
	}
	resp, err := h.svc.Mensual(c.Request.Context(), anio, mes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Comisiones godoc
// @Summary      Comisiones por médico en un rango de fechas
// @Description  Neto cobrado sobre recetas derivadas por cada médico y la comisión resultante según su porcentaje vigente.
// @Tags         reportes
// @Produce      json
// @Param        desde query string true "Fecha desde YYYY-MM-DD"
// @Param        hasta query string true "Fecha hasta YYYY-MM-DD"
// @Success      200   {object} dto.ComisionesResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/comisiones [get]
func (h *ReportesHandler) Comisiones(c *gin.Context) {
	desde, err := time.Parse("2006-01-02", c.Query("desde"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro desde invalido, se espera YYYY-MM-DD"))
		return
	}
	hasta, err := time.Parse("2006-01-02", c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro hasta invalido, se espera YYYY-MM-DD"))
		return
	}
	resp, err := h.comisiones.Calcular(c.Request.Context(), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary      Tablero del día
// @Description  Ingresos de hoy, saldo pendiente total, recetas del mes y productos bajo stock.
// @Tags         reportes
// @Produce      json
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/dashboard [get]
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
