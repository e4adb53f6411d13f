package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const graphAPIBase = "https://graph.facebook.com/v20.0"

// Sender envía un mensaje de plantilla. El worker depende de esta interfaz
// para poder stubear la Graph API en tests.
type Sender interface {
	SendTemplate(ctx context.Context, to, template string, params []string) error
}

// WhatsAppClient habla con la WhatsApp Cloud API (Graph).
type WhatsAppClient struct {
	token         string
	phoneNumberID string
	baseURL       string
	languageCode  string
	http          *http.Client
}

func NewWhatsAppClient(token, phoneNumberID string) *WhatsAppClient {
	return &WhatsAppClient{
		token:         token,
		phoneNumberID: phoneNumberID,
		baseURL:       graphAPIBase,
		languageCode:  "es_AR",
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL apunta el cliente a otro endpoint (tests).
func (c *WhatsAppClient) WithBaseURL(url string) *WhatsAppClient {
	c.baseURL = url
	return c
}

type templatePayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         templateBody `json:"template"`
}

type templateBody struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *WhatsAppClient) SendTemplate(ctx context.Context, to, template string, params []string) error {
	parameters := make([]templateParameter, 0, len(params))
	for _, p := range params {
		parameters = append(parameters, templateParameter{Type: "text", Text: p})
	}

	payload := templatePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: templateBody{
			Name:     template,
			Language: templateLanguage{Code: c.languageCode},
			Components: []templateComponent{
				{Type: "body", Parameters: parameters},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}

var _ Sender = (*WhatsAppClient)(nil)
