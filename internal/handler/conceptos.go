package handler

import (
	"net/http"
	"strconv"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
)

type ConceptosHandler struct{ svc service.ConceptoService }

func NewConceptosHandler(svc service.ConceptoService) *ConceptosHandler {
	return &ConceptosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear concepto de cuota
// @Tags conceptos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearConceptoRequest true "Datos del concepto"
// @Success 201 {object} dto.ConceptoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/conceptos [post]
func (h *ConceptosHandler) Crear(c *gin.Context) {
	var req dto.CrearConceptoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConceptosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConceptosHandler) Listar(c *gin.Context) {
	incluirInactivos, _ := strconv.ParseBool(c.Query("incluir_inactivos"))
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar conceptos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConceptosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarConceptoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Eliminar concepto
// @Description Rechaza la baja cuando el concepto ya tiene cuotas emitidas.
// @Tags conceptos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del concepto"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/conceptos/{id} [delete]
func (h *ConceptosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
