package handler

import (
	"net/http"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar un pago parcial sobre una receta
// @Description  El primer pago puede llevar un descuento porcentual que reduce el total de la receta una única vez. Falla si la caja del día está cerrada o el monto neto supera el saldo.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la receta"
// @Param        body body dto.RegistrarPagoRequest true "Datos del pago"
// @Success      201  {object} dto.PagoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/recetas/{id}/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	recetaID, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), recetaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EstadoCuenta godoc
// @Summary      Estado de cuenta de una receta
// @Description  Total vigente, pagos netos acumulados y saldo pendiente.
// @Tags         pagos
// @Produce      json
// @Param        id path string true "UUID de la receta"
// @Success      200 {object} dto.EstadoCuentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recetas/{id}/pagos [get]
func (h *PagosHandler) EstadoCuenta(c *gin.Context) {
	recetaID, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.EstadoCuenta(c.Request.Context(), recetaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar un pago
// @Description  La eliminación no está sujeta al estado de la caja; el saldo de la receta vuelve a crecer.
// @Tags         pagos
// @Produce      json
// @Param        id path string true "UUID del pago"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pagos/{id} [delete]
func (h *PagosHandler) Eliminar(c *gin.Context) {
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
