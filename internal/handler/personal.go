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

type PersonalHandler struct{ svc service.PersonalService }

func NewPersonalHandler(svc service.PersonalService) *PersonalHandler {
	return &PersonalHandler{svc: svc}
}

// ── Puestos ──────────────────────────────────────────────────────────────────

func (h *PersonalHandler) CrearPuesto(c *gin.Context) {
	var req dto.CrearPuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPuesto(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PersonalHandler) ListarPuestos(c *gin.Context) {
	resp, err := h.svc.ListarPuestos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar puestos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Empleados ────────────────────────────────────────────────────────────────

// CrearEmpleado godoc
// @Summary Registrar empleado
// @Description Si el puesto requiere especialización, la especialidad es obligatoria.
// @Tags personal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearEmpleadoRequest true "Datos del empleado"
// @Success 201 {object} dto.EmpleadoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/empleados [post]
func (h *PersonalHandler) CrearEmpleado(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEmpleado(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PersonalHandler) ListarEmpleados(c *gin.Context) {
	soloActivos, _ := strconv.ParseBool(c.DefaultQuery("solo_activos", "true"))
	resp, err := h.svc.ListarEmpleados(c.Request.Context(), soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar empleados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PersonalHandler) ActualizarEmpleado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEmpleado(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Asignaciones ─────────────────────────────────────────────────────────────

// CrearAsignacion godoc
// @Summary Crear asignación de trabajo
// @Tags personal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearAsignacionRequest true "Datos de la asignación"
// @Success 201 {object} dto.AsignacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/asignaciones [post]
func (h *PersonalHandler) CrearAsignacion(c *gin.Context) {
	var req dto.CrearAsignacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearAsignacion(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PersonalHandler) ListarAsignaciones(c *gin.Context) {
	var filter dto.AsignacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarAsignaciones(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar asignaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Cambiar el estado de una asignación
// @Description Los estados completada y cancelada son terminales y no admiten nuevas transiciones.
// @Tags personal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la asignación"
// @Param body body dto.CambiarEstadoAsignacionRequest true "Nuevo estado"
// @Success 200 {object} dto.AsignacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/asignaciones/{id}/estado [post]
func (h *PersonalHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoAsignacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MisAsignaciones godoc
// @Summary Asignaciones del empleado autenticado
// @Tags personal
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AsignacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/asignaciones/mias [get]
func (h *PersonalHandler) MisAsignaciones(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.MisAsignaciones(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
