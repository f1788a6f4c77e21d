package handler

import (
	"net/http"
	"time"

	"github.com/Nikise23/optica-mia/internal/apierror"
	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar un gasto
// @Description  Falla si la caja del día del gasto está cerrada.
// @Tags         gastos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearGastoRequest true "Datos del gasto"
// @Success      201  {object} dto.GastoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/gastos [post]
func (h *GastosHandler) Crear(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Eliminar godoc
// @Summary      Eliminar un gasto
// @Tags         gastos
// @Produce      json
// @Param        id path string true "UUID del gasto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/gastos/{id} [delete]
func (h *GastosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar godoc
// @Summary      Listar gastos de un rango de fechas
// @Tags         gastos
// @Produce      json
// @Param        desde query string true "Fecha desde YYYY-MM-DD"
// @Param        hasta query string true "Fecha hasta YYYY-MM-DD"
// @Success      200   {array} dto.GastoResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/gastos [get]
func (h *GastosHandler) Listar(c *gin.Context) {
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
	resp, err := h.svc.Listar(c.Request.Context(), desde, hasta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
