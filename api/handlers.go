package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(storage database.Storage, notifier contactNotifier, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		contentHandler: newContentHandler(storage),
		skillHandler:   newSkillHandler(storage),
		contactHandler: newContactHandler(storage, notifier),
		healthHandler:  newHealthHandler(startupTime),
	}
}
