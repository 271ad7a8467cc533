package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contentHandler struct {
	responder Responder
	logger    zerolog.Logger
	storage   database.Storage
}

func newContentHandler(storage database.Storage) contentHandler {
	logger := log.With().Str("handlerName", "contentHandler").Logger()

	return contentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storage:   storage,
	}
}

// listContent returns every content section
// @Summary List content sections
// @Tags Content
// @Produce json
// @Success 200 {array} models.Content
// @Failure 500 {object} ErrorResponse
// @Router /api/content [get]
func (h contentHandler) listContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := h.storage.GetContent(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "content", err))
			return
		}
		if content == nil {
			content = []models.Content{}
		}

		h.responder.WriteJSON(w, content)
	}
}
