package api

import (
	"net/http"

	"github.com/JaimeStill/accord/internal/config"
	"github.com/JaimeStill/accord/internal/revisions"
	"github.com/JaimeStill/accord/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Agreements.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Approvals.Handler().Routes(),
		domain.Clauses.Handler().Routes(),
		domain.Recipients.Handler().Routes(),
		revisions.NewHandler(domain.Revisions, runtime.Logger).Routes(),
		newStorageHandler(
			runtime.Storage,
			runtime.Logger,
			int32(cfg.API.Pagination.MaxPageSize),
		).routes(),
	)
}
