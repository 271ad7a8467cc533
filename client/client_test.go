package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, store database.Storage) *Client {
	t.Helper()

	server, err := api.NewServer(store, nil, map[string]string{})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func stubClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestContentAndSectionLookup(t *testing.T) {
	store := database.NewMemoryStore()
	store.AddContent(models.InsertContent{Section: "hero_tagline", Text: "Hello."})
	c := newTestClient(t, store)

	content, err := c.Content(context.Background())
	require.NoError(t, err)
	require.Len(t, content, 1)

	section, err := c.ContentSection(context.Background(), "hero_tagline")
	require.NoError(t, err)
	require.NotNil(t, section)
	assert.Equal(t, "Hello.", section.Text)

	missing, err := c.ContentSection(context.Background(), "about")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSkillsAreSortedByOrder(t *testing.T) {
	c := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"name":"c","order":3},{"id":2,"name":"a","order":1},{"id":3,"name":"b","order":1}]`)
	})

	skills, err := c.Skills(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestDriftedResponseIsRejected(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
	}{
		"missing field":      {http.StatusOK, `[{"id":1,"section":"about"}]`},
		"wrong type":         {http.StatusOK, `[{"id":"1","section":"about","text":"x"}]`},
		"object not array":   {http.StatusOK, `{"id":1,"section":"about","text":"x"}`},
		"undeclared status":  {http.StatusTeapot, `{"message":"short and stout"}`},
		"null instead of []": {http.StatusOK, `null`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			_, err := c.Content(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestServerErrorBecomesAPIError(t *testing.T) {
	store := database.NewMemoryStore()
	store.ReadErr = errors.New("db down")
	c := newTestClient(t, store)

	_, err := c.Skills(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestSubmitContact(t *testing.T) {
	store := database.NewMemoryStore()
	c := newTestClient(t, store)

	err := c.SubmitContact(context.Background(), models.InsertContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hi",
	})
	require.NoError(t, err)

	messages := store.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "ada@example.com", messages[0].Email)
}

func TestSubmitContactValidatesBeforeSending(t *testing.T) {
	var calls atomic.Int32
	c := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	err := c.SubmitContact(context.Background(), models.InsertContactMessage{Name: "Ada", Email: "nope"})
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Zero(t, calls.Load())
}

func TestSubmitContactRejectedByServer(t *testing.T) {
	c := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Invalid contact submission"}`)
	})

	err := c.SubmitContact(context.Background(), models.InsertContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hi",
	})
	assert.ErrorIs(t, err, ErrRejected)
}
