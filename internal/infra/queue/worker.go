package queue

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type QueueProcessor interface {
	Execute(ctx context.Context) (*usecase.QueueRunResult, error)
}

// Consumer é o subconjunto de *amqp.Channel usado pelo DrainWorker.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// DrainWorker drena a fila de email a cada mensagem em q.email.drain.
// O corpo da mensagem é só um gatilho, publicado fora deste serviço.
type DrainWorker struct {
	Channel   Consumer
	Processor QueueProcessor
}

func NewDrainWorker(ch Consumer, processor QueueProcessor) *DrainWorker {
	return &DrainWorker{Channel: ch, Processor: processor}
}

// Start bloqueia até ctx acabar ou o canal fechar.
func (w *DrainWorker) Start(ctx context.Context) error {
	msgs, err := w.Channel.Consume(
		DrainQueueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	logger.WithField("queue", DrainQueueName).Info("📥 consumidor de drenagem aguardando")

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("⚠️ consumidor de drenagem encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de entregas fechado")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *DrainWorker) handle(ctx context.Context, d amqp.Delivery) {
	run, err := w.Processor.Execute(ctx)
	if err != nil {
		logger.WithError(err).Error("❌ drenagem da fila falhou")
		// sem requeue: vai para a DLQ
		d.Nack(false, false)
		return
	}

	logger.WithFields(map[string]interface{}{
		"processed": run.Processed,
		"sent":      run.Sent,
		"failed":    run.Failed,
	}).Info("✅ fila de email drenada")
	d.Ack(false)
}
