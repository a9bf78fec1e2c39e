package handlers

// AppHandlers aggregates every HTTP handler for route registration.
type AppHandlers struct {
	PropertyHandler *PropertyHandler
	APIKeyHandler   *APIKeyHandler
}
