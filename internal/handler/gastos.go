package handler

import (
	"net/http"
	"time"

	"torresegura/internal/apierror"
	"torresegura/internal/dto"
	"torresegura/internal/middleware"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// ── Categorías ───────────────────────────────────────────────────────────────

// CrearCategoria godoc
// @Summary Crear categoría de gasto
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCategoriaGastoRequest true "Datos de la categoría"
// @Success 201 {object} dto.CategoriaGastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos/categorias [post]
func (h *GastosHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCategoria(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GastosHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar categorias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GastosHandler) ActualizarCategoria(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarCategoriaGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCategoria(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GastosHandler) EliminarCategoria(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarCategoria(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// EjecucionPresupuestal godoc
// @Summary Ejecución presupuestal del mes
// @Description Compara lo gastado en el mes contra el presupuesto mensual de cada categoría.
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD dentro del mes a reportar (default: hoy)"
// @Success 200 {array} dto.CategoriaGastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos/presupuesto [get]
func (h *GastosHandler) EjecucionPresupuestal(c *gin.Context) {
	fecha := time.Now()
	if raw := c.Query("fecha"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha invalida, formato YYYY-MM-DD"))
			return
		}
		fecha = parsed
	}
	resp, err := h.svc.EjecucionPresupuestal(c.Request.Context(), fecha)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular la ejecucion presupuestal"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Gastos ───────────────────────────────────────────────────────────────────

// Crear godoc
// @Summary Registrar gasto
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearGastoRequest true "Datos del gasto"
// @Success 201 {object} dto.GastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *GastosHandler) Crear(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GastosHandler) Obtener(c *gin.Context) {
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

func (h *GastosHandler) Listar(c *gin.Context) {
	var filter dto.GastoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar gastos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GastosHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarGastoRequest
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

// MarcarPagado godoc
// @Summary Marcar gasto como pagado
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del gasto"
// @Success 200 {object} dto.GastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos/{id}/pagar [post]
func (h *GastosHandler) MarcarPagado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	autorizadorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.MarcarPagado(c.Request.Context(), id, autorizadorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GastosHandler) Cancelar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
