package worker

// recargo_cron.go
// Background goroutine that periodically sweeps overdue unpaid cuotas and
// refreshes their late fees, so stored recargos never drift far from the
// values the billing endpoints compute on demand.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const recargoBatchSize = 500

// RecargoProcessor is implemented by the cuota service.
type RecargoProcessor interface {
	ProcesarVencidas(ctx context.Context, hoy time.Time, batchSize int) (int, error)
}

// StartRecargoCron launches a goroutine that ticks every interval and runs
// one late-fee sweep per tick. It respects the context for graceful shutdown.
func StartRecargoCron(ctx context.Context, processor RecargoProcessor, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("recargo_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recargo_cron: shutting down")
				return
			case <-ticker.C:
				n, err := processor.ProcesarVencidas(ctx, time.Now(), recargoBatchSize)
				if err != nil {
					log.Error().Err(err).Msg("recargo_cron: sweep failed")
					continue
				}
				if n > 0 {
					log.Info().Int("actualizadas", n).Msg("recargo_cron: recargos refreshed")
				}
			}
		}
	}()
}
