package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPSender entrega de verdade via gomail.
type SMTPSender struct {
	dialAndSend func(d *gomail.Dialer, m *gomail.Message) error
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{
		dialAndSend: func(d *gomail.Dialer, m *gomail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

func (s *SMTPSender) Send(ctx context.Context, cfg Config, msg Message) (*Result, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host não configurado")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messageID := fmt.Sprintf("<%d.%s@%s>", time.Now().UnixNano(), uuid.NewString(), senderDomain(cfg))

	m := gomail.NewMessage()
	if cfg.FromName != "" {
		m.SetAddressHeader("From", cfg.FromEmail, cfg.FromName)
	} else {
		m.SetHeader("From", cfg.FromEmail)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)

	switch {
	case msg.HTML != "" && msg.Text != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}
	d := gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	d.SSL = cfg.IsSecure()

	if err := s.dialAndSend(d, m); err != nil {
		return nil, fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return &Result{
		MessageID: messageID,
		Response:  fmt.Sprintf("250 Message accepted by %s", cfg.Host),
		Accepted:  []string{msg.To},
		Rejected:  []string{},
		Status:    StatusSent,
	}, nil
}

func senderDomain(cfg Config) string {
	if i := strings.LastIndex(cfg.FromEmail, "@"); i >= 0 && i < len(cfg.FromEmail)-1 {
		return cfg.FromEmail[i+1:]
	}
	if cfg.Host != "" {
		return cfg.Host
	}
	return "localhost"
}
