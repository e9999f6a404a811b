package handler

import (
	"net/http"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/middleware"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlertasHandler struct{ svc service.AlertaService }

func NewAlertasHandler(svc service.AlertaService) *AlertasHandler {
	return &AlertasHandler{svc: svc}
}

// Crear godoc
// @Summary Reportar una alerta de emergencia
// @Tags alertas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearAlertaRequest true "Tipo y descripción"
// @Success 201 {object} dto.AlertaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/alertas [post]
func (h *AlertasHandler) Crear(c *gin.Context) {
	var req dto.CrearAlertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	enviadoPorID, _ := uuid.Parse(claims.UserID)
	resp, err := h.svc.Crear(c.Request.Context(), enviadoPorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlertasHandler) Obtener(c *gin.Context) {
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

// Listar godoc
// @Summary Listar alertas
// @Tags alertas
// @Produce json
// @Security BearerAuth
// @Param estado query string false "pendiente | en_proceso | resuelto"
// @Param enviado_por query string false "Filtrar por usuario que reportó"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.AlertaListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/alertas [get]
func (h *AlertasHandler) Listar(c *gin.Context) {
	var filter dto.AlertaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Mias godoc
// @Summary Alertas reportadas por el usuario autenticado
// @Tags alertas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AlertaResponse
// @Router /v1/alertas/mias [get]
func (h *AlertasHandler) Mias(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)
	resp, err := h.svc.MisAlertas(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Atender una alerta
// @Description Mueve la alerta por el flujo pendiente → en_proceso → resuelto. Tomar la alerta registra quién la atendió y cuándo.
// @Tags alertas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la alerta"
// @Param body body dto.CambiarEstadoAlertaRequest true "Nuevo estado"
// @Success 200 {object} dto.AlertaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/alertas/{id}/estado [post]
func (h *AlertasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoAlertaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	atendidoPorID, _ := uuid.Parse(claims.UserID)
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, atendidoPorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
