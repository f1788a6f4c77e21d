package handler

import (
	"net/http"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type MedicosHandler struct{ svc service.MedicoService }

func NewMedicosHandler(svc service.MedicoService) *MedicosHandler {
	return &MedicosHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar un médico derivador
// @Tags         medicos
// @Accept       json
// @Produce      json
// @Param        body body dto.MedicoRequest true "Datos del médico con su porcentaje de comisión"
// @Success      201  {object} dto.MedicoResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/medicos [post]
func (h *MedicosHandler) Crear(c *gin.Context) {
	var req dto.MedicoRequest
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
// @Summary      Actualizar un médico
// @Description  Cambiar el porcentaje de comisión afecta solo cálculos futuros.
// @Tags         medicos
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del médico"
// @Param        body body dto.MedicoRequest true "Datos a actualizar"
// @Success      200  {object} dto.MedicoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/medicos/{id} [put]
func (h *MedicosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.MedicoRequest
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
// @Summary      Eliminar un médico
// @Tags         medicos
// @Produce      json
// @Param        id path string true "UUID del médico"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/medicos/{id} [delete]
func (h *MedicosHandler) Eliminar(c *gin.Context) {
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
// @Summary      Obtener un médico
// @Tags         medicos
// @Produce      json
// @Param        id path string true "UUID del médico"
// @Success      200 {object} dto.MedicoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/medicos/{id} [get]
func (h *MedicosHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar médicos
// @Tags         medicos
// @Produce      json
// @Param        q query string false "Texto libre sobre nombre / apellido"
// @Success      200 {array} dto.MedicoResponse
// @Router       /v1/medicos [get]
func (h *MedicosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
