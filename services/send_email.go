package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
)

const defaultResendURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendNotifier emails the site owner about each contact message.
type ResendNotifier struct {
	apiKey     string
	fromEmail  string
	recipients []string
	endpoint   string
	httpClient *http.Client
}

type ResendOption func(*ResendNotifier)

// WithResendEndpoint points the notifier at a different API URL.
func WithResendEndpoint(endpoint string) ResendOption {
	return func(n *ResendNotifier) {
		n.endpoint = endpoint
	}
}

func WithResendHTTPClient(client *http.Client) ResendOption {
	return func(n *ResendNotifier) {
		n.httpClient = client
	}
}

// NewResendNotifier requires:
//   - apiKey: Your Resend API key
//   - fromEmail: The sender address (e.g., "Portfolio <contact@example.com>")
//   - recipients: Where notifications go
func NewResendNotifier(apiKey, fromEmail string, recipients []string, opts ...ResendOption) (*ResendNotifier, error) {
	if apiKey == "" {
		return nil, errs.NewConfigMissingError("RESEND_API_KEY")
	}
	if fromEmail == "" {
		return nil, errs.NewConfigMissingError("RESEND_FROM_EMAIL")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	n := &ResendNotifier{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		recipients: recipients,
		endpoint:   defaultResendURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *ResendNotifier) Channel() string {
	return "email"
}

func (n *ResendNotifier) Notify(ctx context.Context, message models.InsertContactMessage) error {
	subject := fmt.Sprintf("New contact message from %s", message.Name)
	body := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p>%s</p>",
		html.EscapeString(message.Name),
		html.EscapeString(message.Email),
		strings.ReplaceAll(html.EscapeString(message.Message), "\n", "<br>"),
	)

	payload := ResendEmailRequest{
		From:    n.fromEmail,
		To:      n.recipients,
		Subject: subject,
		Html:    body,
		ReplyTo: message.Email,
	}
	return n.SendEmail(ctx, payload)
}

// SendEmail posts one email to the Resend API.
func (n *ResendNotifier) SendEmail(ctx context.Context, payload ResendEmailRequest) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
