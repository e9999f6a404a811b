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

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// Registrar godoc
// @Summary Registrar pago
// @Description Crea el pago en estado pendiente. La conciliación contra cuotas ocurre al verificarlo.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarPagoRequest true "Datos del pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PagosHandler) Obtener(c *gin.Context) {
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
// @Summary Listar pagos
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param vivienda_id query string false "Filtrar por vivienda"
// @Param estado query string false "pendiente | verificado | rechazado"
// @Param desde query string false "Fecha YYYY-MM-DD"
// @Param hasta query string false "Fecha YYYY-MM-DD"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Registros por página (default 50)"
// @Success 200 {object} dto.PagoListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos [get]
func (h *PagosHandler) Listar(c *gin.Context) {
	var filter dto.PagoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verificar godoc
// @Summary Verificar pago
// @Description Concilia el pago contra sus cuotas asignadas. Sin asignaciones manuales se aplica a las cuotas pendientes de la vivienda, vencimiento más antiguo primero.
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Success 200 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos/{id}/verificar [post]
func (h *PagosHandler) Verificar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	verificadorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Verificar(c.Request.Context(), id, verificadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rechazar godoc
// @Summary Rechazar pago
// @Description Si el pago ya estaba verificado, revierte sus asignaciones y reabre las cuotas cubiertas recalculando recargos.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Param body body dto.RechazarPagoRequest true "Motivo del rechazo"
// @Success 200 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos/{id}/rechazar [post]
func (h *PagosHandler) Rechazar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.RechazarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	verificadorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Rechazar(c.Request.Context(), id, verificadorID, req.Motivo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AsignarCuota godoc
// @Summary Asignar el pago a una cuota
// @Description La suma de asignaciones nunca supera el monto del pago. Sobre un pago verificado la cuota se concilia de inmediato.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Param body body dto.AsignarCuotaRequest true "Cuota y monto aplicado"
// @Success 200 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos/{id}/asignaciones [post]
func (h *PagosHandler) AsignarCuota(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AsignarCuotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarCuota(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarAsignacion godoc
// @Summary Quitar la asignación de una cuota
// @Description Sobre un pago verificado la cuota cubierta se reabre con su recargo recalculado.
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Param cuota_id path string true "UUID de la cuota"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos/{id}/asignaciones/{cuota_id} [delete]
func (h *PagosHandler) EliminarAsignacion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cuotaID, err := uuid.Parse(c.Param("cuota_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cuota_id invalido"))
		return
	}
	if err := h.svc.EliminarAsignacion(c.Request.Context(), id, cuotaID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
