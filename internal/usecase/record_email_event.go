package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/fieldmap"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

// Tipos de interação de email, no vocabulário do CRM.
const (
	EmailEventDelivered   = "livraison"
	EmailEventOpened      = "ouverture"
	EmailEventClicked     = "clic"
	EmailEventBounced     = "rebond"
	EmailEventUnsubscribe = "desinscription"
	EmailEventComplaint   = "plainte"
	EmailEventBlocked     = "bloque"
	EmailEventDeferred    = "differe"
)

var emailEventTypes = map[string]string{
	"delivered":     EmailEventDelivered,
	"opened":        EmailEventOpened,
	"unique_opened": EmailEventOpened,
	"proxy_open":    EmailEventOpened,
	"click":         EmailEventClicked,
	"clicked":       EmailEventClicked,
	"hard_bounce":   EmailEventBounced,
	"soft_bounce":   EmailEventBounced,
	"bounce":        EmailEventBounced,
	"unsubscribed":  EmailEventUnsubscribe,
	"unsubscribe":   EmailEventUnsubscribe,
	"spam":          EmailEventComplaint,
	"complaint":     EmailEventComplaint,
	"blocked":       EmailEventBlocked,
	"invalid_email": EmailEventBlocked,
	"deferred":      EmailEventDeferred,
}

// EmailEventType traduz o evento do provedor. Evento desconhecido passa cru.
func EmailEventType(event string) string {
	event = strings.ToLower(strings.TrimSpace(event))
	if t, ok := emailEventTypes[event]; ok {
		return t
	}
	return event
}

// RecordEmailEventUseCase grava o retorno de entrega do provedor. Só consulta
// o contato: endereço desconhecido não vira contato novo.
type RecordEmailEventUseCase struct {
	Contacts *ContactResolver
	Events   *EventLogger
	Provider string
}

func NewRecordEmailEventUseCase(contacts *ContactResolver, events *EventLogger) *RecordEmailEventUseCase {
	return &RecordEmailEventUseCase{Contacts: contacts, Events: events, Provider: PlatformBrevo}
}

func (uc *RecordEmailEventUseCase) Execute(ctx context.Context, input RecordEmailEventInput) (*RecordEmailEventOutput, error) {
	raw := stringField(input.Payload, "event")
	if raw == "" {
		return nil, NewValidationError("event is required")
	}
	event := strings.ToLower(raw)
	eventType := EmailEventType(event)

	email := fieldmap.Map(input.Payload).Email
	messageID := stringField(input.Payload, "message-id", "message_id", "messageId")
	ts := stringField(input.Payload, "ts_event", "ts", "ts_epoch")

	contactID, err := uc.Contacts.Lookup(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: CodeBackend, Message: err.Error(), Err: err}
	}

	props := map[string]any{
		"event":    event,
		"email":    email,
		"provider": uc.Provider,
	}
	for _, k := range []string{"subject", "tag", "link", "reason", "sending_ip", "date"} {
		if v := stringField(input.Payload, k); v != "" {
			props[k] = v
		}
	}
	if messageID != "" {
		props["message_id"] = messageID
	}
	if ts != "" {
		props["ts"] = ts
	}

	// mesmo message-id + evento + ts = mesmo event_id em reentregas do webhook
	var eventID string
	if messageID != "" {
		eventID = fmt.Sprintf("%s-%s-%s-%s", uc.Provider, messageID, event, ts)
	}

	ev, err := uc.Events.Log(ctx, entity.EventInput{
		Name:       "email_" + event,
		Type:       eventType,
		Canal:      entity.CanalEmail,
		EventID:    eventID,
		Properties: props,
		Links:      entity.EventLinks{LeadID: contactID, ContactID: contactID},
		Source:     entity.EventSourceServer,
	})
	if err != nil {
		if IsDomainError(err) {
			return nil, err
		}
		return nil, &TechnicalError{Code: CodeBackend, Message: err.Error(), Err: err}
	}

	if contactID == "" {
		logger.WithFields(map[string]interface{}{
			"event": event,
			"email": email,
		}).Info("evento de email para endereço sem contato")
	}

	return &RecordEmailEventOutput{EventID: ev.EventID, ContactID: contactID, Type: eventType}, nil
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}
