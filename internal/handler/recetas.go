package handler

import (
	"net/http"
	"strconv"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type RecetasHandler struct{ svc service.RecetaService }

func NewRecetasHandler(svc service.RecetaService) *RecetasHandler {
	return &RecetasHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar una receta
// @Description  Crea una receta con su total acordado; si lleva armazón descuenta una unidad de stock en la misma transacción.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearRecetaRequest true "Datos de la receta"
// @Success      201  {object} dto.RecetaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/recetas [post]
func (h *RecetasHandler) Crear(c *gin.Context) {
	var req dto.CrearRecetaRequest
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

// Actualizar godoc
// @Summary      Actualizar una receta
// @Description  Cambiar el armazón devuelve el anterior al stock y reserva el nuevo. El total no se modifica por esta vía.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la receta"
// @Param        body body dto.ActualizarRecetaRequest true "Datos a actualizar"
// @Success      200  {object} dto.RecetaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/recetas/{id} [put]
func (h *RecetasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar una receta con sus pagos
// @Tags         recetas
// @Produce      json
// @Param        id path string true "UUID de la receta"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recetas/{id} [delete]
func (h *RecetasHandler) Eliminar(c *gin.Context) {
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

// Obtener godoc
// @Summary      Obtener una receta con su estado de cuenta
// @Tags         recetas
// @Produce      json
// @Param        id path string true "UUID de la receta"
// @Success      200 {object} dto.RecetaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recetas/{id} [get]
func (h *RecetasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar recetas
// @Tags         recetas
// @Produce      json
// @Param        q     query string false "Texto libre sobre paciente (nombre, apellido, DNI)"
// @Param        desde query string false "Fecha desde YYYY-MM-DD"
// @Param        hasta query string false "Fecha hasta YYYY-MM-DD"
// @Param        page  query int    false "Página (default 1)"
// @Param        limit query int    false "Registros por página (default 50)"
// @Success      200   {object} dto.RecetaListResponse
// @Router       /v1/recetas [get]
func (h *RecetasHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.RecetaFilter{
		Q:     c.Query("q"),
		Desde: c.Query("desde"),
		Hasta: c.Query("hasta"),
		Page:  page,
		Limit: limit,
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
