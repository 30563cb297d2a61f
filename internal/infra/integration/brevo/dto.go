package brevo

// Contact é o formato {email, name} usado pela API v3.
type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type SendEmailInput struct {
	Sender      Contact           `json:"sender"`
	To          []Contact         `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	TextContent string            `json:"textContent,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
}

type SendEmailOutput struct {
	MessageID  string   `json:"messageId"`
	MessageIDs []string `json:"messageIds,omitempty"`

	// corpo bruto, repassado como "response" do envio
	Raw string `json:"-"`
}
