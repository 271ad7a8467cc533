package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	storage   database.Storage
}

func newSkillHandler(storage database.Storage) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		storage:   storage,
	}
}

// listSkills returns skills ascending by order
// @Summary List skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill
// @Failure 500 {object} ErrorResponse
// @Router /api/skills [get]
func (h skillHandler) listSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.storage.GetSkills(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "skills", err))
			return
		}
		if skills == nil {
			skills = []models.Skill{}
		}

		h.responder.WriteJSON(w, skills)
	}
}
