package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirefeld/worldbuilder/internal/nodeservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *nodeservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Nodes CRUD.
	r.Get("/nodes", h.ListNodes)
	r.Post("/nodes", h.CreateNode)
	r.Get("/nodes/{key}", h.GetNode)
	r.Put("/nodes/{key}", h.UpdateNode)
	r.Delete("/nodes/{key}", h.DeleteNode)

	// Hierarchy.
	r.Get("/tree", h.Tree)

	// Search.
	r.Get("/search", h.Search)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
