// Package client is a typed consumer of the portfolio API. Every response is
// checked against the shared contract before it is decoded.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/contract"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const maxResponseBytes = 10 << 20

var (
	// ErrContractViolation wraps any response that does not match the contract.
	ErrContractViolation = contract.ErrContractViolation
	ErrRejected          = errors.New("submission rejected")
)

// APIError is a declared non-2xx response, such as a rejected submission.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusBadRequest {
		return ErrRejected
	}
	return nil
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Content fetches every content section.
func (c *Client) Content(ctx context.Context) ([]models.Content, error) {
	var content []models.Content
	if err := c.call(ctx, contract.API.Content.List, nil, &content); err != nil {
		return nil, err
	}
	return content, nil
}

// ContentSection returns the section named name, or nil when the server has
// no such section. A missing section is not an error.
func (c *Client) ContentSection(ctx context.Context, name string) (*models.Content, error) {
	content, err := c.Content(ctx)
	if err != nil {
		return nil, err
	}
	return findSection(content, name), nil
}

// Skills fetches skills sorted ascending by order. The sort is stable, so
// equal orders keep the server's sequence.
func (c *Client) Skills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := c.call(ctx, contract.API.Skills.List, nil, &skills); err != nil {
		return nil, err
	}
	sortSkills(skills)
	return skills, nil
}

// SubmitContact validates locally with the same rules the server applies,
// then posts the message. A 400 comes back as an *APIError matching ErrRejected.
func (c *Client) SubmitContact(ctx context.Context, message models.InsertContactMessage) error {
	if err := message.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encoding contact message: %w", err)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.call(ctx, contract.API.Contact.Submit, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Operation: contract.API.Contact.Submit.Name, StatusCode: http.StatusOK, Message: "server reported failure"}
	}
	return nil
}

func (c *Client) call(ctx context.Context, op contract.Operation, body []byte, out any) error {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, c.baseURL+op.Path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", op.Name, err)
	}

	// 5xx bodies are not part of the contract; anything else must be declared.
	if resp.StatusCode >= http.StatusInternalServerError && !op.DeclaresStatus(resp.StatusCode) {
		return &APIError{Operation: op.Name, StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}
	if err := op.ValidateResponse(resp.StatusCode, respBody); err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Operation: op.Name, StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %s: decoding response: %v", ErrContractViolation, op.Name, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}

func findSection(content []models.Content, name string) *models.Content {
	for i := range content {
		if content[i].Section == name {
			return &content[i]
		}
	}
	return nil
}

func sortSkills(skills []models.Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Order < skills[j].Order
	})
}
