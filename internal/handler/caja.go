package handler

import (
	"net/http"

	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Obtener godoc
// @Summary      Estado de la caja de un día
// @Description  Retorna estado (abierta/cerrada) y totales por método. Un día nunca cerrado se reporta abierto con totales en vivo.
// @Tags         caja
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200   {object} dto.CajaDiaResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/caja/{fecha} [get]
func (h *CajaHandler) Obtener(c *gin.Context) {
	fecha, ok := parseFecha(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary      Cerrar la caja de un día
// @Description  Calcula y persiste los totales por método del día y marca la caja cerrada. Cerrar un día ya cerrado recalcula los totales.
// @Tags         caja
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200   {object} dto.CajaDiaResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/caja/{fecha}/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	fecha, ok := parseFecha(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reabrir godoc
// @Summary      Reabrir la caja de un día cerrado
// @Tags         caja
// @Produce      json
// @Param        fecha path string true "Fecha YYYY-MM-DD"
// @Success      200   {object} dto.CajaDiaResponse
// @Failure      404   {object} apierror.APIError
// @Router       /v1/caja/{fecha}/reabrir [post]
func (h *CajaHandler) Reabrir(c *gin.Context) {
	fecha, ok := parseFecha(c)
	if !ok {
		return
	}
	resp, err := h.svc.Reabrir(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
