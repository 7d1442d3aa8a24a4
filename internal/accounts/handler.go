package accounts

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

type Handler = ledger.Handler[Account]

func NewHandler(repo *ledger.Repository[Account], respondJSON ledger.RespondJSONFunc, respondError ledger.RespondErrorFunc, logger *zerolog.Logger) *Handler {
	return ledger.NewHandler[Account](EntityName, BasePath, repo, respondJSON, respondError, logger)
}

// RegisterRoutes serves accounts on both the legacy and the /api path.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	h.Register(mux)
	h.RegisterAt(mux, AliasPath)
}
