package worker

// estado_cuenta_worker.go
// Processes statement jobs from QueueEstadoCuenta: renders the PDF to disk
// and chains one email job per resident with a registered address.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"torresegura/internal/infra"
	"torresegura/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EstadoCuentaJobPayload is the job envelope sent to QueueEstadoCuenta.
type EstadoCuentaJobPayload struct {
	EstadoCuentaID string `json:"estado_cuenta_id"`
}

type EstadoCuentaWorker struct {
	estadoCuentaRepo repository.EstadoCuentaRepository
	cuotaRepo        repository.CuotaRepository
	pagoRepo         repository.PagoRepository
	viviendaRepo     repository.ViviendaRepository
	dispatcher       *Dispatcher
	pdfStoragePath   string
}

func NewEstadoCuentaWorker(
	estadoCuentaRepo repository.EstadoCuentaRepository,
	cuotaRepo repository.CuotaRepository,
	pagoRepo repository.PagoRepository,
	viviendaRepo repository.ViviendaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *EstadoCuentaWorker {
	return &EstadoCuentaWorker{
		estadoCuentaRepo: estadoCuentaRepo,
		cuotaRepo:        cuotaRepo,
		pagoRepo:         pagoRepo,
		viviendaRepo:     viviendaRepo,
		dispatcher:       dispatcher,
		pdfStoragePath:   pdfStoragePath,
	}
}

// Process handles a single statement job:
//  1. Fetch the estado de cuenta with its vivienda
//  2. Render the PDF and store the path
//  3. Enqueue one email job per resident with an address
//  4. Mark the statement enviado
func (w *EstadoCuentaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EstadoCuentaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("estado_cuenta_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.EstadoCuentaID)
	if err != nil {
		log.Error().Str("estado_cuenta_id", payload.EstadoCuentaID).Msg("estado_cuenta_worker: invalid id")
		return
	}

	ec, err := w.estadoCuentaRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("estado_cuenta_id", payload.EstadoCuentaID).Msg("estado_cuenta_worker: not found")
		return
	}

	cuotas, err := w.cuotaRepo.ListByViviendaPeriodo(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		log.Error().Err(err).Msg("estado_cuenta_worker: failed to load cuotas")
		return
	}
	pagos, err := w.pagoRepo.ListVerificadosPeriodo(ctx, ec.ViviendaID, ec.FechaInicio, ec.FechaFin)
	if err != nil {
		log.Error().Err(err).Msg("estado_cuenta_worker: failed to load pagos")
		return
	}

	pdfPath, err := infra.GenerateEstadoCuentaPDF(ec, cuotas, pagos, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("estado_cuenta_id", payload.EstadoCuentaID).Msg("estado_cuenta_worker: PDF generation failed")
		return
	}
	ec.PDFPath = &pdfPath

	residentes, err := w.viviendaRepo.ListResidentesByVivienda(ctx, ec.ViviendaID, true)
	if err != nil {
		log.Warn().Err(err).Msg("estado_cuenta_worker: failed to load residentes")
	}

	numero := ""
	if ec.Vivienda != nil {
		numero = ec.Vivienda.Numero
	}
	periodo := fmt.Sprintf("%s a %s", ec.FechaInicio.Format("2006-01-02"), ec.FechaFin.Format("2006-01-02"))

	enviados := 0
	for i := range residentes {
		u := residentes[i].Usuario
		if u == nil || u.Email == nil || *u.Email == "" {
			continue
		}
		emailJob := EmailJobPayload{
			ToEmail: *u.Email,
			Subject: fmt.Sprintf("Estado de cuenta vivienda %s — %s", numero, periodo),
			Body: fmt.Sprintf("Adjunto encontrara el estado de cuenta de su vivienda.\nSaldo final: $%s",
				ec.SaldoFinal.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *u.Email).Msg("estado_cuenta_worker: failed to enqueue email")
			continue
		}
		enviados++
	}

	if enviados > 0 {
		ahora := time.Now()
		ec.Enviado = true
		ec.FechaEnvio = &ahora
	}
	if err := w.estadoCuentaRepo.Update(ctx, ec); err != nil {
		log.Error().Err(err).Msg("estado_cuenta_worker: failed to update estado de cuenta")
		return
	}
	log.Info().
		Str("estado_cuenta_id", payload.EstadoCuentaID).
		Str("pdf", pdfPath).
		Int("emails", enviados).
		Msg("estado_cuenta_worker: statement processed")
}
