package handler

import (
	"net/http"
	"strconv"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ViviendasHandler struct{ svc service.ViviendaService }

func NewViviendasHandler(svc service.ViviendaService) *ViviendasHandler {
	return &ViviendasHandler{svc: svc}
}

// ── Edificios ────────────────────────────────────────────────────────────────

// CrearEdificio godoc
// @Summary Registrar edificio
// @Tags viviendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearEdificioRequest true "Datos del edificio"
// @Success 201 {object} dto.EdificioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/edificios [post]
func (h *ViviendasHandler) CrearEdificio(c *gin.Context) {
	var req dto.CrearEdificioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEdificio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ViviendasHandler) ListarEdificios(c *gin.Context) {
	resp, err := h.svc.ListarEdificios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar edificios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ViviendasHandler) ActualizarEdificio(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarEdificioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEdificio(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarEdificio godoc
// @Summary Eliminar edificio
// @Description Rechaza la baja mientras el edificio tenga viviendas activas.
// @Tags viviendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del edificio"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/edificios/{id} [delete]
func (h *ViviendasHandler) EliminarEdificio(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarEdificio(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Viviendas ────────────────────────────────────────────────────────────────

// CrearVivienda godoc
// @Summary Registrar vivienda
// @Tags viviendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearViviendaRequest true "Datos de la vivienda"
// @Success 201 {object} dto.ViviendaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/viviendas [post]
func (h *ViviendasHandler) CrearVivienda(c *gin.Context) {
	var req dto.CrearViviendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVivienda(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ViviendasHandler) ObtenerVivienda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerVivienda(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ViviendasHandler) ListarViviendas(c *gin.Context) {
	soloActivas, _ := strconv.ParseBool(c.DefaultQuery("solo_activas", "true"))
	resp, err := h.svc.ListarViviendas(c.Request.Context(), soloActivas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar viviendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ViviendasHandler) ActualizarVivienda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarViviendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarVivienda(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DarBajaVivienda godoc
// @Summary Dar de baja una vivienda
// @Description La baja es lógica: desvincula residentes y conserva el historial de cuotas y pagos.
// @Tags viviendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la vivienda"
// @Param body body dto.DarBajaViviendaRequest true "Motivo de la baja"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/viviendas/{id} [delete]
func (h *ViviendasHandler) DarBajaVivienda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.DarBajaViviendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.DarBajaVivienda(c.Request.Context(), id, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Residentes ───────────────────────────────────────────────────────────────

// CrearResidente godoc
// @Summary Registrar residente
// @Tags viviendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearResidenteRequest true "Datos del residente"
// @Success 201 {object} dto.ResidenteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/residentes [post]
func (h *ViviendasHandler) CrearResidente(c *gin.Context) {
	var req dto.CrearResidenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearResidente(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ViviendasHandler) ListarResidentes(c *gin.Context) {
	var viviendaID uuid.UUID
	if raw := c.Query("vivienda_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("vivienda_id invalido"))
			return
		}
		viviendaID = parsed
	}
	soloActivos, _ := strconv.ParseBool(c.DefaultQuery("solo_activos", "true"))
	resp, err := h.svc.ListarResidentes(c.Request.Context(), viviendaID, soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar residentes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResidentesDeVivienda godoc
// @Summary Residentes de una vivienda
// @Tags viviendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la vivienda"
// @Param solo_activos query bool false "Solo residentes activos (default true)"
// @Success 200 {array} dto.ResidenteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/viviendas/{id}/residentes [get]
func (h *ViviendasHandler) ResidentesDeVivienda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	soloActivos, _ := strconv.ParseBool(c.DefaultQuery("solo_activos", "true"))
	resp, err := h.svc.ListarResidentes(c.Request.Context(), id, soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar residentes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ViviendasHandler) ActualizarResidente(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarResidenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarResidente(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ViviendasHandler) EliminarResidente(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarResidente(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
