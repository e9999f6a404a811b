package handler

import (
	"net/http"
	"strconv"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/middleware"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VisitasHandler struct{ svc service.AccesoService }

func NewVisitasHandler(svc service.AccesoService) *VisitasHandler {
	return &VisitasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar visita
// @Description Crea el registro de acceso y emite el pase firmado. La firma solo se devuelve en esta respuesta.
// @Tags visitas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVisitaRequest true "Datos de la visita"
// @Success 201 {object} dto.VisitaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/visitas [post]
func (h *VisitasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVisitaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	registradorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarVisita(c.Request.Context(), registradorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VisitasHandler) Obtener(c *gin.Context) {
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

// QR godoc
// @Summary Código QR del pase de visita
// @Tags visitas
// @Produce png
// @Security BearerAuth
// @Param id path string true "UUID de la visita"
// @Success 200 {file} png
// @Failure 404 {object} apierror.APIError
// @Router /v1/visitas/{id}/qr [get]
func (h *VisitasHandler) QR(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	png, err := h.svc.QRVisita(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// VerificarQR godoc
// @Summary Verificar pase escaneado en caseta
// @Description Valida la firma HMAC del pase. Un pase adulterado responde valido=false, nunca un error 500.
// @Tags visitas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VerificarQRRequest true "Contenido del QR escaneado"
// @Success 200 {object} dto.VerificarQRResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/visitas/verificar [post]
func (h *VisitasHandler) VerificarQR(c *gin.Context) {
	var req dto.VerificarQRRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.VerificarQR(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarSalida godoc
// @Summary Registrar salida de la visita
// @Tags visitas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la visita"
// @Success 200 {object} dto.VisitaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/visitas/{id}/salida [post]
func (h *VisitasHandler) RegistrarSalida(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.RegistrarSalida(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary Historial de visitas
// @Tags visitas
// @Produce json
// @Security BearerAuth
// @Param vivienda_id query string false "Filtrar por vivienda destino"
// @Param activas query bool false "Solo visitas sin salida registrada"
// @Param desde query string false "Fecha YYYY-MM-DD"
// @Param hasta query string false "Fecha YYYY-MM-DD"
// @Param limit query int false "Máximo de registros (default y tope 100)"
// @Success 200 {array} dto.VisitaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/visitas [get]
func (h *VisitasHandler) Historial(c *gin.Context) {
	var filter dto.VisitaHistorialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar visitas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Movimientos de residentes ────────────────────────────────────────────────

// RegistrarMovimiento godoc
// @Summary Registrar entrada o salida de un residente
// @Tags visitas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/movimientos [post]
func (h *VisitasHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VisitasHandler) ListarMovimientos(c *gin.Context) {
	var residenteID *uuid.UUID
	if raw := c.Query("residente_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("residente_id invalido"))
			return
		}
		residenteID = &parsed
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.svc.ListarMovimientos(c.Request.Context(), residenteID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
