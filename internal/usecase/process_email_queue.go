package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

const DefaultQueueBatchSize = 10

// markTimeout limita cada transição de estado, que roda fora do ctx da requisição.
const markTimeout = 5 * time.Second

// ProcessEmailQueueUseCase drena um lote da fila. A exclusividade entre
// instâncias é do claim_email_queue_batch; o mutex só evita que o poller,
// o consumer e o HTTP rodem ao mesmo tempo no mesmo processo.
//
// Item cujo mark falhou fica em processing e NÃO é reenviado: o claim só
// pega pending. Reconciliação é manual, pelo log e pela métrica.
type ProcessEmailQueueUseCase struct {
	Repo      entity.EmailQueueRepositoryInterface
	Sender    EmailSender
	Default   mail.Config
	BatchSize int

	mu sync.Mutex
}

func NewProcessEmailQueueUseCase(repo entity.EmailQueueRepositoryInterface, sender EmailSender, defaultCfg mail.Config, batchSize int) *ProcessEmailQueueUseCase {
	if batchSize <= 0 {
		batchSize = DefaultQueueBatchSize
	}
	return &ProcessEmailQueueUseCase{
		Repo:      repo,
		Sender:    sender,
		Default:   defaultCfg,
		BatchSize: batchSize,
	}
}

func (uc *ProcessEmailQueueUseCase) Execute(ctx context.Context) (*QueueRunResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, NewBackendError("drenagem cancelada antes do claim", err)
	}

	items, err := uc.Repo.ClaimBatch(ctx, uc.BatchSize)
	if err != nil {
		return nil, NewBackendError("erro ao reservar lote da fila", err)
	}

	run := &QueueRunResult{Results: make([]QueueItemResult, 0, len(items))}
	for _, item := range items {
		var res QueueItemResult
		if err := ctx.Err(); err != nil {
			// item já saiu de pending: fecha como failed em vez de deixá-lo em processing
			res = uc.abandonItem(ctx, item, err)
		} else {
			res = uc.processItem(ctx, item)
		}
		run.Processed++
		if res.Status == entity.EmailStatusSent {
			run.Sent++
		} else {
			run.Failed++
		}
		run.Results = append(run.Results, res)
	}

	if run.Processed > 0 {
		logger.WithFields(map[string]interface{}{
			"processed": run.Processed,
			"sent":      run.Sent,
			"failed":    run.Failed,
		}).Info("📬 lote da fila processado")
	}
	return run, nil
}

func (uc *ProcessEmailQueueUseCase) processItem(ctx context.Context, item *entity.EmailQueueItem) QueueItemResult {
	result := QueueItemResult{QueueID: item.ID}
	log := logger.WithFields(map[string]interface{}{
		"queue_id":  item.ID,
		"recipient": item.Recipient,
	})

	cfg, sendRes, sendErr := uc.deliver(ctx, item)
	provider := string(cfg.Provider)

	if sendErr != nil {
		result.Status = entity.EmailStatusFailed
		result.Error = sendErr.Error()
		metrics.RecordEmailProcessed(provider, entity.EmailStatusFailed)
		log.WithError(sendErr).Warn("⚠️ envio falhou")

		if err := uc.markFailed(ctx, item.ID, sendErr.Error()); err != nil {
			result.MarkError = err.Error()
			metrics.RecordEmailUnmarked()
			log.WithError(err).Error("❌ erro ao marcar item como failed")
		}
		return result
	}

	result.Status = entity.EmailStatusSent
	result.MessageID = sendRes.MessageID
	metrics.RecordEmailProcessed(provider, entity.EmailStatusSent)

	response, err := json.Marshal(sendRes)
	if err != nil {
		response = json.RawMessage(`{}`)
	}
	markCtx, cancel := markContext(ctx)
	defer cancel()
	if err := uc.Repo.MarkSent(markCtx, item.ID, sendRes.MessageID, response); err != nil {
		// entregue mas não marcado: fica em processing, sem reenvio
		result.MarkError = err.Error()
		metrics.RecordEmailUnmarked()
		log.WithField("message_id", sendRes.MessageID).WithError(err).
			Error("❌ email entregue mas não marcado como sent, reconciliar manualmente")
	}
	return result
}

func (uc *ProcessEmailQueueUseCase) abandonItem(ctx context.Context, item *entity.EmailQueueItem, cause error) QueueItemResult {
	detail := fmt.Sprintf("envio cancelado: %v", cause)
	result := QueueItemResult{QueueID: item.ID, Status: entity.EmailStatusFailed, Error: detail}
	metrics.RecordEmailProcessed(string(uc.Default.Provider), entity.EmailStatusFailed)

	if err := uc.markFailed(ctx, item.ID, detail); err != nil {
		result.MarkError = err.Error()
		metrics.RecordEmailUnmarked()
		logger.WithField("queue_id", item.ID).WithError(err).Error("❌ erro ao marcar item cancelado como failed")
	}
	return result
}

func (uc *ProcessEmailQueueUseCase) markFailed(ctx context.Context, queueID, detail string) error {
	markCtx, cancel := markContext(ctx)
	defer cancel()
	return uc.Repo.MarkFailed(markCtx, queueID, detail)
}

// markContext sobrevive ao cancelamento do ctx do lote: o item já foi
// reservado e precisa chegar a sent ou failed.
func markContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
}

// deliver converte panic do provedor em falha do item.
func (uc *ProcessEmailQueueUseCase) deliver(ctx context.Context, item *entity.EmailQueueItem) (cfg mail.Config, res *mail.Result, err error) {
	cfg = uc.Default
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("panic durante envio: %v", r)
		}
	}()

	override, err := mail.ParseConfig(item.ProviderConfig)
	if err != nil {
		return cfg, nil, err
	}
	cfg = uc.Default.Merge(override)

	res, err = uc.Sender.Send(ctx, cfg, mail.Message{
		To:      item.Recipient,
		Subject: item.Subject,
		HTML:    item.HTML,
		Text:    item.Text,
	})
	if err == nil && res == nil {
		err = fmt.Errorf("provedor não devolveu resultado")
	}
	return cfg, res, err
}
