package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/contract"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog/log"
)

// setupRoutes binds every contract operation to its handler.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	bind := func(op contract.Operation, handler http.HandlerFunc) {
		r.Method(op.Method, op.Path, handler)
	}

	bind(contract.API.Content.List, handlers.contentHandler.listContent())
	bind(contract.API.Skills.List, handlers.skillHandler.listSkills())
	bind(contract.API.Contact.Submit, handlers.contactHandler.submitContact())
	bind(contract.API.Health.Check, handlers.healthHandler.check())

	responder := NewResponder(log.Logger)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responder.WriteError(w, errs.NewNotFoundError("route "+req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responder.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed, "method not allowed"))
	})
}
