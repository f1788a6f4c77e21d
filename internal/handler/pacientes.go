package handler

import (
	"net/http"

	"github.com/Nikise23/optica-mia/internal/dto"
	"github.com/Nikise23/optica-mia/internal/service"

	"github.com/gin-gonic/gin"
)

type PacientesHandler struct{ svc service.PacienteService }

func NewPacientesHandler(svc service.PacienteService) *PacientesHandler {
	return &PacientesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear un paciente
// @Tags         pacientes
// @Accept       json
// @Produce      json
// @Param        body body dto.PacienteRequest true "Datos del paciente"
// @Success      201  {object} dto.PacienteResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/pacientes [post]
func (h *PacientesHandler) Crear(c *gin.Context) {
	var req dto.PacienteRequest
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
// @Summary      Actualizar un paciente
// @Tags         pacientes
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del paciente"
// @Param        body body dto.PacienteRequest true "Datos a actualizar"
// @Success      200  {object} dto.PacienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/pacientes/{id} [put]
func (h *PacientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PacienteRequest
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
// @Summary      Eliminar un paciente
// @Tags         pacientes
// @Produce      json
// @Param        id path string true "UUID del paciente"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pacientes/{id} [delete]
func (h *PacientesHandler) Eliminar(c *gin.Context) {
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
// @Summary      Obtener un paciente
// @Tags         pacientes
// @Produce      json
// @Param        id path string true "UUID del paciente"
// @Success      200 {object} dto.PacienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pacientes/{id} [get]
func (h *PacientesHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar pacientes
// @Tags         pacientes
// @Produce      json
// @Param        q query string false "Texto libre sobre nombre / apellido / DNI"
// @Success      200 {array} dto.PacienteResponse
// @Router       /v1/pacientes [get]
func (h *PacientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
