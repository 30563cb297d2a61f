package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingRecipient = errors.New("recipient is required")
	ErrMissingSubject   = errors.New("subject is required")
	ErrMissingBody      = errors.New("html or text body is required")
	ErrMissingSender    = errors.New("from address is required")
)

// Dispatcher escolhe o Sender pelo ProviderKind explícito da configuração.
type Dispatcher struct {
	senders map[ProviderKind]Sender
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{senders: make(map[ProviderKind]Sender)}
}

func (d *Dispatcher) Register(kind ProviderKind, sender Sender) *Dispatcher {
	d.senders[kind] = sender
	return d
}

func (d *Dispatcher) Send(ctx context.Context, cfg Config, msg Message) (*Result, error) {
	if err := validateMessage(cfg, msg); err != nil {
		return nil, err
	}

	sender, ok := d.senders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("provedor %q não registrado", cfg.Provider)
	}

	res, err := sender.Send(ctx, cfg, msg)
	if err != nil {
		return nil, fmt.Errorf("envio via %s falhou: %w", cfg.Provider, err)
	}
	return res, nil
}

func validateMessage(cfg Config, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrMissingRecipient
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return ErrMissingSubject
	}
	if msg.HTML == "" && msg.Text == "" {
		return ErrMissingBody
	}
	if cfg.FromEmail == "" {
		return ErrMissingSender
	}
	return nil
}
