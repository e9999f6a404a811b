package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"torresegura/internal/apierror"
	"torresegura/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// EstadoCuentaPDF godoc
// @Summary Descargar estado de cuenta en PDF
// @Tags reportes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "UUID del estado de cuenta"
// @Success 200 {file} pdf
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/estados-cuenta/{id}/pdf [get]
func (h *ReportesHandler) EstadoCuentaPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	path, err := h.svc.EstadoCuentaPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, fmt.Sprintf("estado_cuenta_%s.pdf", id))
}

// EstadoCuentaExcel godoc
// @Summary Descargar estado de cuenta en Excel
// @Tags reportes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "UUID del estado de cuenta"
// @Success 200 {file} xlsx
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/estados-cuenta/{id}/excel [get]
func (h *ReportesHandler) EstadoCuentaExcel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	buf, err := h.svc.EstadoCuentaExcel(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	writeDownload(c, buf,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("estado_cuenta_%s.xlsx", id))
}

// CuotasCSV godoc
// @Summary Exportar cuotas a CSV
// @Tags reportes
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} csv
// @Router /v1/reportes/cuotas/csv [get]
func (h *ReportesHandler) CuotasCSV(c *gin.Context) {
	buf, err := h.svc.CuotasCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar cuotas"))
		return
	}
	writeDownload(c, buf, "text/csv", "cuotas.csv")
}

func (h *ReportesHandler) PagosCSV(c *gin.Context) {
	buf, err := h.svc.PagosCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar pagos"))
		return
	}
	writeDownload(c, buf, "text/csv", "pagos.csv")
}

func (h *ReportesHandler) GastosCSV(c *gin.Context) {
	buf, err := h.svc.GastosCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar gastos"))
		return
	}
	writeDownload(c, buf, "text/csv", "gastos.csv")
}

func (h *ReportesHandler) VisitasCSV(c *gin.Context) {
	buf, err := h.svc.VisitasCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar visitas"))
		return
	}
	writeDownload(c, buf, "text/csv", "visitas.csv")
}

func writeDownload(c *gin.Context, buf *bytes.Buffer, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
