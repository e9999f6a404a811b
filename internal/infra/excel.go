package infra

// excel.go — estado de cuenta Excel export using excelize.
// Produces a workbook with three sheets: Resumen (summary totals),
// Cuotas (per-cuota detail) and Pagos (verified payments).

import (
	"bytes"
	"fmt"

	"torresegura/internal/model"

	"github.com/xuri/excelize/v2"
)

// GenerateEstadoCuentaExcel builds the statement workbook in memory.
// cuotas and pagos must already be scoped to the statement period.
func GenerateEstadoCuentaExcel(ec *model.EstadoCuenta, cuotas []model.Cuota, pagos []model.Pago) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// ── Resumen ──────────────────────────────────────────────────────────────
	const resumen = "Resumen"
	f.SetSheetName("Sheet1", resumen)

	vivienda := ""
	if ec.Vivienda != nil {
		vivienda = fmt.Sprintf("Vivienda %s - Piso %d", ec.Vivienda.Numero, ec.Vivienda.Piso)
	}
	rows := [][]interface{}{
		{"Estado de Cuenta", vivienda},
		{"Período", fmt.Sprintf("%s a %s", ec.FechaInicio.Format("02/01/2006"), ec.FechaFin.Format("02/01/2006"))},
		{},
		{"Saldo anterior", ec.SaldoAnterior.InexactFloat64()},
		{"Total cuotas", ec.TotalCuotas.InexactFloat64()},
		{"Total recargos", ec.TotalRecargos.InexactFloat64()},
		{"Total pagos", ec.TotalPagos.InexactFloat64()},
		{"Saldo final", ec.SaldoFinal.InexactFloat64()},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(resumen, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: resumen row %d: %w", i+1, err)
		}
	}

	// ── Cuotas ───────────────────────────────────────────────────────────────
	const hojaCuotas = "Cuotas"
	if _, err := f.NewSheet(hojaCuotas); err != nil {
		return nil, err
	}
	header := []interface{}{"Concepto", "Emisión", "Vencimiento", "Monto", "Recargo", "Pagada"}
	if err := f.SetSheetRow(hojaCuotas, "A1", &header); err != nil {
		return nil, err
	}
	for i, c := range cuotas {
		concepto := ""
		if c.Concepto != nil {
			concepto = c.Concepto.Nombre
		}
		row := []interface{}{
			concepto,
			c.FechaEmision.Format("02/01/2006"),
			c.FechaVencimiento.Format("02/01/2006"),
			c.Monto.InexactFloat64(),
			c.Recargo.InexactFloat64(),
			c.Pagada,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(hojaCuotas, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: cuota row %d: %w", i+2, err)
		}
	}

	// ── Pagos ────────────────────────────────────────────────────────────────
	const hojaPagos = "Pagos"
	if _, err := f.NewSheet(hojaPagos); err != nil {
		return nil, err
	}
	header = []interface{}{"Fecha", "Método", "Referencia", "Monto"}
	if err := f.SetSheetRow(hojaPagos, "A1", &header); err != nil {
		return nil, err
	}
	for i, p := range pagos {
		row := []interface{}{
			p.FechaPago.Format("02/01/2006"),
			p.Metodo,
			p.Referencia,
			p.Monto.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(hojaPagos, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: pago row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write buffer: %w", err)
	}
	return buf, nil
}
