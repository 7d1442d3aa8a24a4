package tags

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

type Handler = ledger.Handler[Tag]

func NewHandler(repo *ledger.Repository[Tag], respondJSON ledger.RespondJSONFunc, respondError ledger.RespondErrorFunc, logger *zerolog.Logger) *Handler {
	return ledger.NewHandler[Tag](EntityName, BasePath, repo, respondJSON, respondError, logger)
}

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	h.Register(mux)
}
