package approvals

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/accord/pkg/handlers"
	"github.com/JaimeStill/accord/pkg/routes"
)

// Handler provides HTTP endpoints for reading and recording approvals.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "approvals"),
	}
}

// Routes returns the route group definition for approval endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/approvals",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{agreement}", Handler: h.List},
			{Method: "PUT", Pattern: "/{agreement}", Handler: h.Decide},
		},
	}
}

// List returns all approval records for an agreement.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agreementID, err := uuid.Parse(r.PathValue("agreement"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	items, err := h.sys.ListByAgreement(r.Context(), agreementID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Decide records a stakeholder's status for an agreement. Status values are
// case-insensitive on the wire.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	agreementID, err := uuid.Parse(r.PathValue("agreement"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd DecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidBody(err))
		return
	}
	if cmd.Recipient == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("recipient required"))
		return
	}

	// An absent status key never passes through Status.UnmarshalJSON, so the
	// zero value must be rejected here before it reaches storage.
	if _, err := ParseStatus(string(cmd.Status)); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	a, err := h.sys.Decide(r.Context(), agreementID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

func errInvalidBody(err error) error {
	if errors.Is(err, ErrInvalidStatus) {
		return ErrInvalidStatus
	}
	return err
}

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
