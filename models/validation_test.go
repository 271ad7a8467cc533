package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInsertContactMessageAcceptsValidInput(t *testing.T) {
	msg, err := ParseInsertContactMessage([]byte(`{"name":"Ada","email":"ada@example.com","message":"Hello there"}`))
	require.NoError(t, err)
	assert.Equal(t, InsertContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello there"}, msg)
}

func TestParseInsertContactMessageEnumeratesEveryViolation(t *testing.T) {
	_, err := ParseInsertContactMessage([]byte(`{"email":"not-an-email","message":""}`))
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Has("name", "required"))
	assert.True(t, vErr.Has("email", "email"))
	assert.True(t, vErr.Has("message", "required"))
	assert.Len(t, vErr.Violations, 3)
}

func TestParseInsertContactMessageRejectsWrongTypes(t *testing.T) {
	_, err := ParseInsertContactMessage([]byte(`{"name":42,"email":"ada@example.com","message":["hi"]}`))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Has("name", "type"))
	assert.True(t, vErr.Has("message", "type"))
	assert.False(t, vErr.Has("name", "required"))
	assert.Len(t, vErr.Violations, 2)
}

func TestParseInsertContactMessageRejectsNonObjectBodies(t *testing.T) {
	for _, body := range []string{``, `null`, `[]`, `"hello"`, `{"name":`} {
		_, err := ParseInsertContactMessage([]byte(body))
		assert.True(t, IsValidationError(err), "body %q", body)
	}
}

func TestParseInsertContactMessageTreatsNullAsMissing(t *testing.T) {
	_, err := ParseInsertContactMessage([]byte(`{"name":null,"email":"ada@example.com","message":"hi"}`))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Has("name", "required"))
}

func TestInsertContentValidate(t *testing.T) {
	assert.NoError(t, InsertContent{Section: "about", Text: "bio"}.Validate())

	var vErr *ValidationError
	require.ErrorAs(t, InsertContent{}.Validate(), &vErr)
	assert.True(t, vErr.Has("section", "required"))
	assert.True(t, vErr.Has("text", "required"))
}

func TestInsertSkillValidateAllowsAnyOrder(t *testing.T) {
	assert.NoError(t, InsertSkill{Name: "Go", Order: 0}.Validate())
	assert.NoError(t, InsertSkill{Name: "Go", Order: -3}.Validate())

	var vErr *ValidationError
	require.ErrorAs(t, InsertSkill{Order: 1}.Validate(), &vErr)
	assert.Equal(t, []Violation{{Field: "name", Rule: "required", Message: "is required"}}, vErr.Violations)
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	err := InsertContactMessage{Email: "bad"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "email: must be a valid email address")
}
