package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ProviderKind é resolvido quando a configuração é carregada, nunca a partir do host.
type ProviderKind string

const (
	ProviderBrevo     ProviderKind = "brevo"
	ProviderSMTP      ProviderKind = "smtp"
	ProviderSimulated ProviderKind = "simulated"
)

func ParseProviderKind(s string) (ProviderKind, error) {
	switch ProviderKind(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderBrevo:
		return ProviderBrevo, nil
	case ProviderSMTP:
		return ProviderSMTP, nil
	case ProviderSimulated:
		return ProviderSimulated, nil
	case "":
		return "", nil
	}
	return "", fmt.Errorf("provedor de email desconhecido: %q", s)
}

func (k *ProviderKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseProviderKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Config é a configuração SMTP-like de um envio. Campos vazios herdam do default.
type Config struct {
	Provider  ProviderKind `json:"provider,omitempty"`
	Host      string       `json:"host,omitempty"`
	Port      int          `json:"port,omitempty"`
	Secure    *bool        `json:"secure,omitempty"`
	User      string       `json:"user,omitempty"`
	Password  string       `json:"password,omitempty"`
	FromEmail string       `json:"from_email,omitempty"`
	FromName  string       `json:"from_name,omitempty"`
	APIKey    string       `json:"api_key,omitempty"`
}

// ParseConfig lê o provider_config de um item da fila. JSON vazio ou null = sem override.
func ParseConfig(raw json.RawMessage) (Config, error) {
	var cfg Config
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("provider_config inválido: %w", err)
	}
	return cfg, nil
}

// Merge devolve c com os campos não vazios de override aplicados. Se o
// override troca de host ou de provedor, User/Password/APIKey de c não são
// herdados: só valem as credenciais que vieram no próprio override.
func (c Config) Merge(override Config) Config {
	out := c
	hostChanged := override.Host != "" && !strings.EqualFold(strings.TrimSpace(override.Host), strings.TrimSpace(c.Host))
	providerChanged := override.Provider != "" && override.Provider != c.Provider
	if hostChanged || providerChanged {
		out.User = ""
		out.Password = ""
		out.APIKey = ""
	}
	if override.Provider != "" {
		out.Provider = override.Provider
	}
	if override.Host != "" {
		out.Host = override.Host
	}
	if override.Port != 0 {
		out.Port = override.Port
	}
	if override.Secure != nil {
		out.Secure = override.Secure
	}
	if override.User != "" {
		out.User = override.User
	}
	if override.Password != "" {
		out.Password = override.Password
	}
	if override.FromEmail != "" {
		out.FromEmail = override.FromEmail
	}
	if override.FromName != "" {
		out.FromName = override.FromName
	}
	if override.APIKey != "" {
		out.APIKey = override.APIKey
	}
	return out
}

func (c Config) IsSecure() bool {
	if c.Secure != nil {
		return *c.Secure
	}
	return c.Port == 465
}

// Redacted serve para logs.
func (c Config) Redacted() Config {
	out := c
	if out.Password != "" {
		out.Password = "***"
	}
	if out.APIKey != "" {
		out.APIKey = "***"
	}
	return out
}

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

// Result é o envelope comum de sucesso de todos os provedores.
type Result struct {
	MessageID string   `json:"messageId"`
	Response  string   `json:"response"`
	Accepted  []string `json:"accepted"`
	Rejected  []string `json:"rejected"`
	Status    string   `json:"status"`
}

const StatusSent = "sent"

type Sender interface {
	Send(ctx context.Context, cfg Config, msg Message) (*Result, error)
}
