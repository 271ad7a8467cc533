package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/contract"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxContactBodyBytes = 64 << 10

// contactNotifier starts a best-effort notification without waiting for it.
type contactNotifier interface {
	Dispatch(message models.InsertContactMessage)
}

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	storage   database.Storage
	notifier  contactNotifier
}

func newContactHandler(storage database.Storage, notifier contactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storage:   storage,
		notifier:  notifier,
	}
}

// submitContact stores a contact form message
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Success 200 {object} ContactSuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid contact submission"
// @Failure 500 {object} ErrorResponse
// @Router /api/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	op := contract.API.Contact.Submit

	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxContactBodyBytes))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidSubmissionError(fmt.Errorf("reading body: %w", err)))
			return
		}

		input, err := op.ValidateInput(bodyBytes)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidSubmissionError(err))
			return
		}
		message, ok := input.(models.InsertContactMessage)
		if !ok {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("unexpected contact input", fmt.Errorf("got %T", input)))
			return
		}

		if err := h.storage.SaveMessage(r.Context(), message); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("save", "contact message", err))
			return
		}

		if h.notifier != nil {
			h.notifier.Dispatch(message)
		}

		h.responder.WriteJSON(w, ContactSuccessResponse{Success: true})
	}
}
