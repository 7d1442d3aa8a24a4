package categories

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

const (
	EntityName = "Category"
	BasePath   = "/api/categories"
)

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (c Category) EntityID() uuid.UUID { return c.ID }

func (c Category) WithID(id uuid.UUID) Category {
	c.ID = id
	return c
}

func (c Category) DisplayName() string { return c.Name }

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ledger.NewValidationError("Category name must not be empty")
	}
	return nil
}
