package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.brevo.com/v3"

// APIError carrega o status e o corpo devolvidos pela Brevo.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brevo api error (status %d): %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SendEmail envia um email transacional. apiKey vazio usa a chave do client.
func (c *Client) SendEmail(ctx context.Context, apiKey string, input SendEmailInput) (*SendEmailOutput, error) {
	body, err := c.do(ctx, http.MethodPost, "/smtp/email", apiKey, input)
	if err != nil {
		return nil, err
	}

	var out SendEmailOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("erro decode brevo: %w", err)
	}
	if out.MessageID == "" && len(out.MessageIDs) > 0 {
		out.MessageID = out.MessageIDs[0]
	}
	out.Raw = string(body)
	return &out, nil
}

func (c *Client) GetAccount(ctx context.Context, apiKey string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/account", apiKey, nil)
}

func (c *Client) ListContactLists(ctx context.Context, apiKey string, limit int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/contacts/lists?"+limitQuery(limit), apiKey, nil)
}

func (c *Client) ListSenders(ctx context.Context, apiKey string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/senders", apiKey, nil)
}

func (c *Client) ListCampaigns(ctx context.Context, apiKey string, limit int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/emailCampaigns?"+limitQuery(limit), apiKey, nil)
}

func limitQuery(limit int) string {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", "0")
	return q.Encode()
}

func (c *Client) do(ctx context.Context, method, path, apiKey string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar json: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com brevo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta brevo: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request, apiKey string) {
	if apiKey == "" {
		apiKey = c.apiKey
	}
	req.Header.Set("api-key", apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LigueCRM/1.0")
}
