package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	contentHandler contentHandler
	skillHandler   skillHandler
	contactHandler contactHandler
	healthHandler  healthHandler
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message" example:"Invalid contact submission"`
}

type ContactSuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"3h12m5s"`
}
