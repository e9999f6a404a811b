package handler

import (
	"net/http"
	"time"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
)

type CuotasHandler struct{ svc service.CuotaService }

func NewCuotasHandler(svc service.CuotaService) *CuotasHandler {
	return &CuotasHandler{svc: svc}
}

// Crear godoc
// @Summary Emitir una cuota individual
// @Tags cuotas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCuotaRequest true "Datos de la cuota"
// @Success 201 {object} dto.CuotaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuotas [post]
func (h *CuotasHandler) Crear(c *gin.Context) {
	var req dto.CrearCuotaRequest
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

func (h *CuotasHandler) Obtener(c *gin.Context) {
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

// Actualizar godoc
// @Summary Editar una cuota no pagada
// @Tags cuotas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la cuota"
// @Param body body dto.ActualizarCuotaRequest true "Campos a modificar"
// @Success 200 {object} dto.CuotaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuotas/{id} [put]
func (h *CuotasHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarCuotaRequest
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

// Listar godoc
// @Summary Listar cuotas
// @Tags cuotas
// @Produce json
// @Security BearerAuth
// @Param vivienda_id query string false "Filtrar por vivienda"
// @Param concepto_id query string false "Filtrar por concepto"
// @Param pagada query string false "true | false"
// @Param vencidas query bool false "Solo cuotas vencidas sin pagar"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.CuotaListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuotas [get]
func (h *CuotasHandler) Listar(c *gin.Context) {
	var filter dto.CuotaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cuotas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Generar godoc
// @Summary Generación masiva de cuotas
// @Description Emite una cuota del concepto para cada vivienda activa. Idempotente por (concepto, vivienda, fecha de emisión).
// @Tags cuotas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GenerarCuotasRequest true "Concepto y periodo"
// @Success 200 {object} dto.GenerarCuotasResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuotas/generar [post]
func (h *CuotasHandler) Generar(c *gin.Context) {
	var req dto.GenerarCuotasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GenerarCuotas(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarRecargo godoc
// @Summary Recalcular el recargo de una cuota
// @Tags cuotas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la cuota"
// @Success 200 {object} dto.CuotaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cuotas/{id}/recargo [post]
func (h *CuotasHandler) ActualizarRecargo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ActualizarRecargo(c.Request.Context(), id, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeudaVivienda godoc
// @Summary Deuda vigente de una vivienda
// @Description Endpoint de consulta para la app móvil. La respuesta se cachea en Redis por 60 segundos.
// @Tags cuotas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la vivienda"
// @Success 200 {object} dto.DeudaViviendaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/viviendas/{id}/deuda [get]
func (h *CuotasHandler) DeudaVivienda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.DeudaVivienda(c.Request.Context(), id, time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
