package jobs

import (
	"context"
	"time"

	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/pkg/logger"
)

// StartExpiryScanJob lanza el job diario de vencimientos en una goroutine.
// Espera StartupDelay antes de la primera corrida (para que la app termine de
// levantar) y luego repite cada interval. Se detiene al cancelar ctx.
func StartExpiryScanJob(ctx context.Context, uc *notify.ExpiryScanUseCase, startupDelay, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	go func() {
		if startupDelay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(startupDelay):
			}
		}

		runOnce(uc, log)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce(uc, log)
			}
		}
	}()
}

func runOnce(uc *notify.ExpiryScanUseCase, log *logger.Logger) {
	res, err := uc.Run()
	if err != nil {
		log.Error().Err(err).Msg("scan de vencimientos")
		return
	}
	log.Info().
		Int("scanned", res.Scanned).
		Int("notified", res.Notified).
		Msg("scan de vencimientos completado")
}
