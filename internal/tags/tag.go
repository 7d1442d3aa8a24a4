package tags

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

const (
	EntityName = "Tag"
	BasePath   = "/api/tags"
)

type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (t Tag) EntityID() uuid.UUID { return t.ID }

func (t Tag) WithID(id uuid.UUID) Tag {
	t.ID = id
	return t
}

func (t Tag) DisplayName() string { return t.Name }

func (t Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ledger.NewValidationError("Tag name must not be empty")
	}
	return nil
}
