package worker

import (
	"context"
	"sync"
	"time"

	"wallet-ledger/internal/service"

	"github.com/rs/zerolog"
)

// ReconcileWorker periodically checks cached balances against the transaction log
type ReconcileWorker struct {
	service  service.AuditService
	interval time.Duration
	logger   zerolog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       *sync.WaitGroup
}

func NewReconcileWorker(svc service.AuditService, interval time.Duration, logger zerolog.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		service:  svc,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
}

// Start returns immediately. It does nothing when the log cannot be reconciled.
func (w *ReconcileWorker) Start(ctx context.Context) {
	if !w.service.Enabled() {
		w.logger.Info().Msg("Reconcile worker disabled: entry fees or win credits are not logged")
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("Reconcile worker started")

		for {
			select {
			case <-ticker.C:
				w.run(ctx)
			case <-w.stopChan:
				w.logger.Info().Msg("Reconcile worker stopping")
				return
			case <-ctx.Done():
				w.logger.Info().Msg("Reconcile worker stopping (context done)")
				return
			}
		}
	}()
}

func (w *ReconcileWorker) run(ctx context.Context) {
	w.logger.Debug().Msg("Running reconciliation")
	discrepancies, err := w.service.Reconcile(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to run reconciliation")
		return
	}
	if len(discrepancies) > 0 {
		w.logger.Warn().Int("accounts", len(discrepancies)).Msg("Reconciliation found mismatched balances")
	}
}

func (w *ReconcileWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
}
