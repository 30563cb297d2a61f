package worker

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type QueueProcessor interface {
	Execute(ctx context.Context) (*usecase.QueueRunResult, error)
}

// EmailQueuePoller drena a fila de email em intervalo fixo.
type EmailQueuePoller struct {
	processor    QueueProcessor
	tickInterval time.Duration
}

func NewEmailQueuePoller(processor QueueProcessor, interval time.Duration) *EmailQueuePoller {
	return &EmailQueuePoller{
		processor:    processor,
		tickInterval: interval,
	}
}

// Start bloqueia até ctx acabar. Intervalo <= 0 não inicia nada.
func (w *EmailQueuePoller) Start(ctx context.Context) {
	if w.tickInterval <= 0 {
		logger.Log.Info("poller da fila de email desativado")
		return
	}

	logger.WithField("interval", w.tickInterval.String()).Info("🕒 poller da fila de email iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("⚠️ poller da fila de email encerrado")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *EmailQueuePoller) drain(ctx context.Context) {
	run, err := w.processor.Execute(ctx)
	if err != nil {
		logger.WithError(err).Error("❌ erro ao drenar fila de email")
		return
	}

	if run.Processed > 0 {
		logger.WithFields(map[string]interface{}{
			"processed": run.Processed,
			"sent":      run.Sent,
			"failed":    run.Failed,
		}).Info("✅ lote da fila de email processado")
	}
}
