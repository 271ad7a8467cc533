// Package contract is the single description of the HTTP API shared by the
// server routes and the client. Paths, methods, input validation and
// response shapes are declared here and nowhere else.
package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaBaseURL = "https://portfolio.schemas.local/"

var (
	// ErrContractViolation is returned when a request or response does not
	// match its declared shape.
	ErrContractViolation = errors.New("contract violation")
	ErrUndeclaredStatus  = errors.New("undeclared response status")
)

// InputValidator decodes and validates a request body.
type InputValidator func(body []byte) (any, error)

type Operation struct {
	Name      string
	Method    string
	Path      string
	Input     InputValidator
	Responses map[int]*jsonschema.Schema
}

// ValidateInput runs the operation's input validator. Operations without
// input accept anything and return nil.
func (op Operation) ValidateInput(body []byte) (any, error) {
	if op.Input == nil {
		return nil, nil
	}
	return op.Input(body)
}

// ValidateResponse checks body against the schema declared for status.
func (op Operation) ValidateResponse(status int, body []byte) error {
	schema, ok := op.Responses[status]
	if !ok {
		return fmt.Errorf("%w: %s %w %d", ErrContractViolation, op.Name, ErrUndeclaredStatus, status)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %s status %d: invalid JSON: %v", ErrContractViolation, op.Name, status, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: %s status %d: trailing data after JSON value", ErrContractViolation, op.Name, status)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s status %d: %v", ErrContractViolation, op.Name, status, err)
	}
	return nil
}

// DeclaresStatus reports whether status has a response shape.
func (op Operation) DeclaresStatus(status int) bool {
	_, ok := op.Responses[status]
	return ok
}

type contentOperations struct {
	List Operation
}

type skillOperations struct {
	List Operation
}

type contactOperations struct {
	Submit Operation
}

type healthOperations struct {
	Check Operation
}

// API is the full contract.
var API = struct {
	Content contentOperations
	Skills  skillOperations
	Contact contactOperations
	Health  healthOperations
}{
	Content: contentOperations{
		List: Operation{
			Name:   "content.list",
			Method: http.MethodGet,
			Path:   "/api/content",
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK: mustCompile("content-list.schema.json"),
			},
		},
	},
	Skills: skillOperations{
		List: Operation{
			Name:   "skills.list",
			Method: http.MethodGet,
			Path:   "/api/skills",
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK: mustCompile("skill-list.schema.json"),
			},
		},
	},
	Contact: contactOperations{
		Submit: Operation{
			Name:   "contact.submit",
			Method: http.MethodPost,
			Path:   "/api/contact",
			Input: func(body []byte) (any, error) {
				return models.ParseInsertContactMessage(body)
			},
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK:         mustCompile("contact-success.schema.json"),
				http.StatusBadRequest: mustCompile("error-message.schema.json"),
			},
		},
	},
	Health: healthOperations{
		Check: Operation{
			Name:   "health.check",
			Method: http.MethodGet,
			Path:   "/healthz",
			Responses: map[int]*jsonschema.Schema{
				http.StatusOK: mustCompile("health.schema.json"),
			},
		},
	},
}

// Operations lists every operation in registration order.
func Operations() []Operation {
	return []Operation{
		API.Content.List,
		API.Skills.List,
		API.Contact.Submit,
		API.Health.Check,
	}
}

// BuildURL replaces each :key placeholder in path with its value.
func BuildURL(path string, params map[string]string) string {
	url := path
	for key, value := range params {
		url = strings.ReplaceAll(url, ":"+key, value)
	}
	return url
}

func mustCompile(name string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	for resource, schema := range schemaResources {
		if err := c.AddResource(schemaBaseURL+resource, strings.NewReader(schema)); err != nil {
			panic(fmt.Sprintf("contract schema %s load failed: %v", resource, err))
		}
	}
	compiled, err := c.Compile(schemaBaseURL + name)
	if err != nil {
		panic(fmt.Sprintf("contract schema %s compile failed: %v", name, err))
	}
	return compiled
}
