package handler

import (
	"net/http"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EstadosCuentaHandler struct{ svc service.EstadoCuentaService }

func NewEstadosCuentaHandler(svc service.EstadoCuentaService) *EstadosCuentaHandler {
	return &EstadosCuentaHandler{svc: svc}
}

// Crear godoc
// @Summary Crear estado de cuenta
// @Description Los totales del periodo se calculan una sola vez, al momento de la creación.
// @Tags estados-cuenta
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearEstadoCuentaRequest true "Vivienda y periodo"
// @Success 201 {object} dto.EstadoCuentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados-cuenta [post]
func (h *EstadosCuentaHandler) Crear(c *gin.Context) {
	var req dto.CrearEstadoCuentaRequest
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

func (h *EstadosCuentaHandler) Obtener(c *gin.Context) {
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

// ListarPorVivienda godoc
// @Summary Historial de estados de cuenta de una vivienda
// @Tags estados-cuenta
// @Produce json
// @Security BearerAuth
// @Param vivienda_id query string true "UUID de la vivienda"
// @Success 200 {array} dto.EstadoCuentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados-cuenta [get]
func (h *EstadosCuentaHandler) ListarPorVivienda(c *gin.Context) {
	viviendaID, err := uuid.Parse(c.Query("vivienda_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("vivienda_id invalido"))
		return
	}
	resp, err := h.svc.ListarPorVivienda(c.Request.Context(), viviendaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar estados de cuenta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Generar godoc
// @Summary Generación masiva de estados de cuenta
// @Description Crea un estado de cuenta por vivienda activa para el periodo. Omite las viviendas que ya tienen uno para ese periodo exacto.
// @Tags estados-cuenta
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GenerarEstadosCuentaRequest true "Periodo"
// @Success 200 {object} dto.GenerarEstadosCuentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados-cuenta/generar [post]
func (h *EstadosCuentaHandler) Generar(c *gin.Context) {
	var req dto.GenerarEstadosCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GenerarMasivo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recalcular godoc
// @Summary Recalcular un estado de cuenta
// @Description Recalcula los totales del periodo con las cuotas y pagos actuales. Es la única forma de actualizar un estado de cuenta ya emitido.
// @Tags estados-cuenta
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del estado de cuenta"
// @Success 200 {object} dto.EstadoCuentaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/estados-cuenta/{id}/recalcular [post]
func (h *EstadosCuentaHandler) Recalcular(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Recalcular(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enviar godoc
// @Summary Enviar estado de cuenta por email
// @Description Encola el renderizado del PDF y el envío a los residentes de la vivienda. El procesamiento es asíncrono.
// @Tags estados-cuenta
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del estado de cuenta"
// @Success 202
// @Failure 400 {object} apierror.APIError
// @Router /v1/estados-cuenta/{id}/enviar [post]
func (h *EstadosCuentaHandler) Enviar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Enviar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusAccepted)
}
