package ledger_test

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

type widget struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (w widget) EntityID() uuid.UUID { return w.ID }

func (w widget) WithID(id uuid.UUID) widget {
	w.ID = id
	return w
}

func (w widget) DisplayName() string { return w.Name }

func (w widget) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ledger.NewValidationError("Widget name is required")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}
