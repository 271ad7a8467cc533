package models

import (
	"encoding/json"
	"time"
)

// ContactMessage is one inbound contact form submission. No exposed operation
// reads it back; the table exists for manual inspection.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:text;not null"`
	Email     string    `json:"email" gorm:"column:email;type:text;not null"`
	Message   string    `json:"message" gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `json:"-" gorm:"column:created_at;autoCreateTime"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

type InsertContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func (m InsertContactMessage) Validate() error {
	vErr := &ValidationError{}
	validateStruct(m, vErr)
	return vErr.orNil()
}

func (m InsertContactMessage) Record() ContactMessage {
	return ContactMessage{Name: m.Name, Email: m.Email, Message: m.Message}
}

// ParseInsertContactMessage decodes a raw request body and validates it.
// Every problem is reported in a single *ValidationError: a body that is not
// a JSON object, fields of the wrong JSON type, and failed field rules.
func ParseInsertContactMessage(body []byte) (InsertContactMessage, error) {
	var msg InsertContactMessage
	vErr := &ValidationError{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		vErr.add("", "type", "body must be a JSON object")
		return msg, vErr
	}

	msg.Name = stringField(raw, "name", vErr)
	msg.Email = stringField(raw, "email", vErr)
	msg.Message = stringField(raw, "message", vErr)

	validateStruct(msg, vErr)
	if err := vErr.orNil(); err != nil {
		return InsertContactMessage{}, err
	}
	return msg, nil
}

// stringField reads key from raw as a JSON string. Absent and null values
// yield "" and are left for the required rule to report.
func stringField(raw map[string]json.RawMessage, key string, vErr *ValidationError) string {
	value, ok := raw[key]
	if !ok || string(value) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		vErr.add(key, "type", "must be a string")
		return ""
	}
	return s
}
