package accounts

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
)

const (
	EntityName = "Account"
	// BasePath keeps the unprefixed route the service has always exposed.
	BasePath = "/accounts"
	// AliasPath is the /api form used by the other collections.
	AliasPath = "/api/accounts"
)

type Account struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (a Account) EntityID() uuid.UUID { return a.ID }

func (a Account) WithID(id uuid.UUID) Account {
	a.ID = id
	return a
}

func (a Account) DisplayName() string { return a.Name }

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ledger.NewValidationError("Account name must not be empty")
	}
	return nil
}
