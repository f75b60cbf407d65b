package revisions

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/JaimeStill/accord/pkg/handlers"
	"github.com/JaimeStill/accord/pkg/routes"
)

// Handler provides HTTP endpoints for reading revision history.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a Handler over the given store.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "revisions"),
	}
}

// Routes returns the route group definition for revision endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/revisions",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{subject}", Handler: h.List},
		},
	}
}

// List returns a subject's revisions in insertion order, oldest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subject, err := url.PathUnescape(r.PathValue("subject"))
	if err != nil || subject == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	items, err := h.store.ListBySubject(r.Context(), subject)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
