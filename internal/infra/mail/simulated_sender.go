package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SimulatedSender NÃO entrega nada: aceita depois de um atraso fixo e inventa
// um message id plausível. Serve para ambientes sem transporte de email.
type SimulatedSender struct {
	delay time.Duration
}

func NewSimulatedSender(delay time.Duration) *SimulatedSender {
	return &SimulatedSender{delay: delay}
}

func (s *SimulatedSender) Send(ctx context.Context, cfg Config, msg Message) (*Result, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	id := fmt.Sprintf("%d.%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	messageID := fmt.Sprintf("<%s@%s>", id, senderDomain(cfg))

	return &Result{
		MessageID: messageID,
		Response:  "250 2.0.0 OK: queued as " + id,
		Accepted:  []string{msg.To},
		Rejected:  []string{},
		Status:    StatusSent,
	}, nil
}
