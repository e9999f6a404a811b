package infra

// pdf.go — estado de cuenta PDF generation using go-pdf/fpdf.
// Renders a paginated A4 document with:
//   - Condominium header and statement period
//   - Cuota detail table (concepto, emision, vencimiento, monto, recargo, estado)
//   - Verified pago detail table (fecha, metodo, referencia, monto)
//   - Summary block with the running balance
//
// The output file is saved to storagePath/estado_cuenta_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"torresegura/internal/model"

	"github.com/go-pdf/fpdf"
)

const pdfBottomLimit = 270 // mm — start a new page past this Y

// GenerateEstadoCuentaPDF renders the statement detail for a vivienda.
// cuotas and pagos must already be scoped to the statement period.
// Returns the absolute path to the generated file.
func GenerateEstadoCuentaPDF(ec *model.EstadoCuenta, cuotas []model.Cuota, pagos []model.Pago, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("estado_cuenta_%s.pdf", ec.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Torre Segura", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Estado de Cuenta", "", 1, "C", false, 0, "")

	vivienda := ""
	if ec.Vivienda != nil {
		vivienda = fmt.Sprintf("Vivienda %s - Piso %d", ec.Vivienda.Numero, ec.Vivienda.Piso)
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, vivienda, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Período: %s a %s",
		ec.FechaInicio.Format("02/01/2006"), ec.FechaFin.Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Cuotas table ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Cuotas del período", "", 1, "L", false, 0, "")

	colConcepto := contentW * 0.30
	colFecha := contentW * 0.14
	colMonto := contentW * 0.14

	cuotaHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(colConcepto, 6, "Concepto", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colFecha, 6, "Emisión", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colFecha, 6, "Vencimiento", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colMonto, 6, "Monto", "B", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 6, "Recargo", "B", 0, "R", false, 0, "")
		pdf.CellFormat(colFecha, 6, "Estado", "B", 1, "C", false, 0, "")
	}
	cuotaHeader()

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range cuotas {
		if pdf.GetY() > pdfBottomLimit {
			pdf.AddPage()
			cuotaHeader()
			pdf.SetFont("Helvetica", "", 8)
		}
		concepto := ""
		if c.Concepto != nil {
			concepto = c.Concepto.Nombre
		}
		if len(concepto) > 30 {
			concepto = concepto[:29] + "…"
		}
		estado := "Pendiente"
		if c.Pagada {
			estado = "Pagada"
		}
		pdf.CellFormat(colConcepto, 5, concepto, "", 0, "L", false, 0, "")
		pdf.CellFormat(colFecha, 5, c.FechaEmision.Format("02/01/2006"), "", 0, "C", false, 0, "")
		pdf.CellFormat(colFecha, 5, c.FechaVencimiento.Format("02/01/2006"), "", 0, "C", false, 0, "")
		pdf.CellFormat(colMonto, 5, "$"+c.Monto.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colMonto, 5, "$"+c.Recargo.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colFecha, 5, estado, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// ── Pagos table ──────────────────────────────────────────────────────────
	if pdf.GetY() > pdfBottomLimit-20 {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Pagos verificados del período", "", 1, "L", false, 0, "")

	colRef := contentW * 0.34

	pagoHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(colFecha, 6, "Fecha", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colConcepto, 6, "Método", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colRef, 6, "Referencia", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colMonto+colFecha, 6, "Monto", "B", 1, "R", false, 0, "")
	}
	pagoHeader()

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range pagos {
		if pdf.GetY() > pdfBottomLimit {
			pdf.AddPage()
			pagoHeader()
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.CellFormat(colFecha, 5, p.FechaPago.Format("02/01/2006"), "", 0, "C", false, 0, "")
		pdf.CellFormat(colConcepto, 5, p.Metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(colRef, 5, p.Referencia, "", 0, "L", false, 0, "")
		pdf.CellFormat(colMonto+colFecha, 5, "$"+p.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Summary ──────────────────────────────────────────────────────────────
	if pdf.GetY() > pdfBottomLimit-40 {
		pdf.AddPage()
	}
	summaryRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(contentW*0.70, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.30, 6, value, "", 1, "R", false, 0, "")
	}
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(1)
	summaryRow("Saldo anterior:", "$"+ec.SaldoAnterior.StringFixed(2), false)
	summaryRow("Total cuotas:", "$"+ec.TotalCuotas.StringFixed(2), false)
	summaryRow("Total recargos:", "$"+ec.TotalRecargos.StringFixed(2), false)
	summaryRow("Total pagos:", "-$"+ec.TotalPagos.StringFixed(2), false)
	summaryRow("SALDO FINAL:", "$"+ec.SaldoFinal.StringFixed(2), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
