package handler

import (
	"net/http"
	"strconv"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear un producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearProductoRequest true "Datos del producto"
// @Success      201  {object} dto.ProductoResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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
// @Summary      Actualizar un producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.ActualizarProductoRequest true "Datos a actualizar"
// @Success      200  {object} dto.ProductoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
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
// @Summary      Eliminar un producto
// @Tags         productos
// @Produce      json
// @Param        id path string true "UUID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [delete]
func (h *ProductosHandler) Eliminar(c *gin.Context) {
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
// @Summary      Obtener un producto
// @Tags         productos
// @Produce      json
// @Param        id path string true "UUID del producto"
// @Success      200 {object} dto.ProductoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/productos/{id} [get]
func (h *ProductosHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        q         query string false "Texto libre sobre codigo / nombre"
// @Param        categoria query string false "Filtrar por categoria"
// @Param        page      query int    false "Página (default 1)"
// @Param        limit     query int    false "Registros por página (default 50)"
// @Success      200       {object} dto.ProductoListResponse
// @Router       /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.ProductoFilter{
		Q:         c.Query("q"),
		Categoria: c.Query("categoria"),
		Page:      page,
		Limit:     limit,
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarStock godoc
// @Summary      Ajustar stock manualmente
// @Description  Aplica un delta con motivo (recuento, rotura). Rechaza ajustes que dejarían stock negativo.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del producto"
// @Param        body body dto.AjustarStockRequest true "Delta y motivo"
// @Success      200  {object} dto.ProductoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/productos/{id}/stock [patch]
func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BajoStock godoc
// @Summary      Productos con stock en o bajo el mínimo
// @Tags         productos
// @Produce      json
// @Success      200 {array} dto.ProductoResponse
// @Router       /v1/productos/bajo-stock [get]
func (h *ProductosHandler) BajoStock(c *gin.Context) {
	resp, err := h.svc.ListarBajoStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
