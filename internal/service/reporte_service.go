package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"torresegura/internal/config"
	"torresegura/internal/infra"
	"torresegura/internal/repository"

	"github.com/google/uuid"
)

type ReporteService interface {
	// EstadoCuentaPDF renders the statement to disk and returns the file path.
	EstadoCuentaPDF(ctx context.Context, estadoCuentaID uuid.UUID) (string, error)
	// EstadoCuentaExcel builds the statement workbook in memory.
	EstadoCuentaExcel(ctx context.Context, estadoCuentaID uuid.UUID) (*bytes.Buffer, error)

	CuotasCSV(ctx context.Context) (*bytes.Buffer, error)
	PagosCSV(ctx context.Context) (*bytes.Buffer, error)
	GastosCSV(ctx context.Context) (*bytes.Buffer, error)
	VisitasCSV(ctx context.Context) (*bytes.Buffer, error)
}

type reporteService struct {
	estadoCuentaRepo repository.EstadoCuentaRepository
	cuotaRepo        repository.CuotaRepository
	pagoRepo         repository.PagoRepository
	gastoRepo        repository.GastoRepository
	visitaRepo       repository.VisitaRepository
	cfg              *config.Config
}

func NewReporteService(
	estadoCuentaRepo repository.EstadoCuentaRepository,
	cuotaRepo repository.CuotaRepository,
	pagoRepo repository.PagoRepository,
	gastoRepo repository.GastoRepository,
	visitaRepo repository.VisitaRepository,
	cfg *config.Config,
) ReporteService {
	return &reporteService{
		estadoCuentaRepo: estadoCuentaRepo,
		cuotaRepo:        cuotaRepo,
		pagoRepo:         pagoRepo,
		gastoRepo:        gastoRepo,
		visitaRepo:       visitaRepo,
		cfg:              cfg,
	}
}

func (s *reporteService) EstadoCuentaPDF(ctx context.Context, estadoCuentaID uuid.UUID) (string, error) {
	ec, err := s.estadoCuentaRepo.FindByID(ctx, estadoCuentaID)
	if err != nil {
		return "", errors.New("estado de cuenta no encontrado")
	}
	cuotas, err := s.cuotaRepo.ListByViviendaPeriodo(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		return "", err
	}
	pagos, err := s.pagoRepo.ListVerificadosPeriodo(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		return "", err
	}

	path, err := infra.GenerateEstadoCuentaPDF(ec, cuotas, pagos, s.cfg.PDFStoragePath)
	if err != nil {
		return "", err
	}
	ec.PDFPath = &path
	if err := s.estadoCuentaRepo.Update(ctx, ec); err != nil {
		return "", err
	}
	return path, nil
}

func (s *reporteService) EstadoCuentaExcel(ctx context.Context, estadoCuentaID uuid.UUID) (*bytes.Buffer, error) {
	ec, err := s.estadoCuentaRepo.FindByID(ctx, estadoCuentaID)
	if err != nil {
		return nil, errors.New("estado de cuenta no encontrado")
	}
	cuotas, err := s.cuotaRepo.ListByViviendaPeriodo(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		return nil, err
	}
	pagos, err := s.pagoRepo.ListVerificadosPeriodo(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		return nil, err
	}
	return infra.GenerateEstadoCuentaExcel(ec, cuotas, pagos)
}

// ── CSV exports ──────────────────────────────────────────────────────────────
// encoding/csv from the standard library: the flat exports need no styling or
// formulas, so a spreadsheet library would add nothing here.

func (s *reporteService) CuotasCSV(ctx context.Context) (*bytes.Buffer, error) {
	cuotas, _, err := s.cuotaRepo.List(ctx, repository.CuotaFilter{})
	if err != nil {
		return nil, err
	}
	return writeCSV(
		[]string{"id", "concepto", "vivienda", "monto", "recargo", "fecha_emision", "fecha_vencimiento", "pagada"},
		len(cuotas),
		func(i int) []string {
			c := cuotas[i]
			concepto := ""
			if c.Concepto != nil {
				concepto = c.Concepto.Nombre
			}
			vivienda := ""
			if c.Vivienda != nil {
				vivienda = c.Vivienda.Numero
			}
			return []string{
				c.ID.String(), concepto, vivienda,
				c.Monto.StringFixed(2), c.Recargo.StringFixed(2),
				c.FechaEmision.Format(fechaLayout), c.FechaVencimiento.Format(fechaLayout),
				fmt.Sprintf("%t", c.Pagada),
			}
		})
}

func (s *reporteService) PagosCSV(ctx context.Context) (*bytes.Buffer, error) {
	pagos, _, err := s.pagoRepo.List(ctx, repository.PagoFilter{})
	if err != nil {
		return nil, err
	}
	return writeCSV(
		[]string{"id", "vivienda_id", "monto", "fecha_pago", "metodo", "referencia", "estado"},
		len(pagos),
		func(i int) []string {
			p := pagos[i]
			return []string{
				p.ID.String(), p.ViviendaID.String(),
				p.Monto.StringFixed(2), p.FechaPago.Format(fechaLayout),
				p.Metodo, p.Referencia, p.Estado,
			}
		})
}

func (s *reporteService) GastosCSV(ctx context.Context) (*bytes.Buffer, error) {
	gastos, _, err := s.gastoRepo.List(ctx, repository.GastoFilter{})
	if err != nil {
		return nil, err
	}
	return writeCSV(
		[]string{"id", "categoria", "concepto", "monto", "fecha", "proveedor", "estado", "tipo"},
		len(gastos),
		func(i int) []string {
			g := gastos[i]
			categoria := ""
			if g.Categoria != nil {
				categoria = g.Categoria.Nombre
			}
			return []string{
				g.ID.String(), categoria, g.Concepto,
				g.Monto.StringFixed(2), g.Fecha.Format(fechaLayout),
				g.Proveedor, g.Estado, g.TipoGasto,
			}
		})
}

func (s *reporteService) VisitasCSV(ctx context.Context) (*bytes.Buffer, error) {
	visitas, err := s.visitaRepo.ListHistorial(ctx, repository.VisitaFilter{Limit: 100})
	if err != nil {
		return nil, err
	}
	return writeCSV(
		[]string{"id", "visitante", "documento", "vivienda", "entrada", "salida", "motivo"},
		len(visitas),
		func(i int) []string {
			v := visitas[i]
			vivienda := ""
			if v.ViviendaDestino != nil {
				vivienda = v.ViviendaDestino.Numero
			}
			salida := ""
			if v.FechaHoraSalida != nil {
				salida = v.FechaHoraSalida.Format(fechaHoraLayout)
			}
			return []string{
				v.ID.String(), v.NombreVisitante, v.DocumentoVisitante, vivienda,
				v.FechaHoraEntrada.Format(fechaHoraLayout), salida, v.Motivo,
			}
		})
}

func writeCSV(header []string, n int, row func(i int) []string) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &buf, nil
}
