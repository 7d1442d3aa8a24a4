package categories

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

type Handler = ledger.Handler[Category]

func NewHandler(repo *ledger.Repository[Category], respondJSON ledger.RespondJSONFunc, respondError ledger.RespondErrorFunc, logger *zerolog.Logger) *Handler {
	return ledger.NewHandler[Category](EntityName, BasePath, repo, respondJSON, respondError, logger)
}

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	h.Register(mux)
}
