package entity

import (
	"context"
	"time"
)

const (
	EventSourceClient = "client"
	EventSourceServer = "server"

	EventNameLead = "Lead"
	CanalEmail    = "email"
)

// EventLinks são os vínculos opcionais de um evento.
type EventLinks struct {
	LeadID     string `json:"lead_id,omitempty"`
	ContactID  string `json:"contact_id,omitempty"`
	CampaignID string `json:"campaign_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	ContractID string `json:"contract_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

// Event é append-only. EventID deve ser único, mas nada aqui impede duplicatas.
type Event struct {
	ID         string         `json:"id"`
	EventID    string         `json:"event_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type,omitempty"`
	Canal      string         `json:"canal,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Links      EventLinks     `json:"links"`
	Source     string         `json:"source"`
	CreatedAt  time.Time      `json:"created_at"`
}

type EventInput struct {
	Name       string
	Type       string
	Canal      string
	EventID    string
	Properties map[string]any
	Links      EventLinks
	Source     string
}

// EventMessage é o que vai para o barramento (RabbitMQ ou Kafka).
type EventMessage struct {
	EventID    string         `json:"event_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type,omitempty"`
	Canal      string         `json:"canal,omitempty"`
	Source     string         `json:"source"`
	ContactID  string         `json:"contact_id,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func (e *Event) Message() EventMessage {
	contactID := e.Links.ContactID
	if contactID == "" {
		contactID = e.Links.LeadID
	}
	return EventMessage{
		EventID:    e.EventID,
		Name:       e.Name,
		Type:       e.Type,
		Canal:      e.Canal,
		Source:     e.Source,
		ContactID:  contactID,
		Properties: e.Properties,
		OccurredAt: e.CreatedAt,
	}
}

type EventRepositoryInterface interface {
	Insert(ctx context.Context, event *Event) error
}
