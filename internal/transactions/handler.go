package transactions

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

type Handler = ledger.Handler[Transaction]

func NewHandler(repo *ledger.Repository[Transaction], respondJSON ledger.RespondJSONFunc, respondError ledger.RespondErrorFunc, logger *zerolog.Logger) *Handler {
	return ledger.NewHandler[Transaction](EntityName, BasePath, repo, respondJSON, respondError, logger)
}

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	h.Register(mux)
}
