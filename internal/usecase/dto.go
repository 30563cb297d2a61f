package usecase

import "encoding/json"

const (
	PlatformMeta   = "meta"
	PlatformTikTok = "tiktok"
	PlatformBrevo  = "brevo"
)

type IngestLeadInput struct {
	Platform  string
	Payload   map[string]any
	IPAddress string
	UserAgent string
}

type IngestLeadOutput struct {
	ContactID    string `json:"contact_id"`
	SubmissionID string `json:"submission_id"`
	EventID      string `json:"event_id"`
	ConsentID    string `json:"consent_id,omitempty"`
}

type RecordEmailEventInput struct {
	Payload map[string]any
}

type RecordEmailEventOutput struct {
	EventID   string `json:"event_id"`
	ContactID string `json:"contact_id,omitempty"`
	Type      string `json:"type"`
}

// TrackEventInput chega do navegador; EventName é any para recusar tipos errados.
type TrackEventInput struct {
	EventName  any            `json:"event_name"`
	Properties map[string]any `json:"properties,omitempty"`
	EventID    string         `json:"event_id,omitempty"`
	LeadID     string         `json:"lead_id,omitempty"`
	ContactID  string         `json:"contact_id,omitempty"`
	CampaignID string         `json:"campaign_id,omitempty"`
	PageID     string         `json:"page_id,omitempty"`
	ContractID string         `json:"contract_id,omitempty"`
	ProjectID  string         `json:"project_id,omitempty"`
	UserID     string         `json:"-"` // vem do token, nunca do corpo
}

type TrackEventOutput struct {
	EventID string `json:"event_id"`
}

type SendEmailInput struct {
	To      string          `json:"to"`
	Subject string          `json:"subject"`
	HTML    string          `json:"html"`
	Text    string          `json:"text,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
}

type SendEmailOutput struct {
	MessageID string `json:"messageId"`
	Response  string `json:"response"`
}

type QueueItemResult struct {
	QueueID   string `json:"queue_id"`
	Status    string `json:"status"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	MarkError string `json:"mark_error,omitempty"`
}

type QueueRunResult struct {
	Processed int               `json:"processed"`
	Sent      int               `json:"sent"`
	Failed    int               `json:"failed"`
	Results   []QueueItemResult `json:"results"`
}
