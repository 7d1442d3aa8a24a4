package transactions

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/accounts"
	"github.com/sebuszqo/TxTracker/internal/categories"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/tags"
)

const (
	EntityName = "Transaction"
	BasePath   = "/api/transactions"
)

// Transaction embeds full account, category and tag values as they were at
// write time. They are not checked against their own collections.
type Transaction struct {
	ID                   uuid.UUID            `json:"id"`
	Amount               float64              `json:"amount"`
	Date                 time.Time            `json:"date"`
	From                 accounts.Account     `json:"from"`
	To                   accounts.Account     `json:"to"`
	AccountTransactionID string               `json:"accountTransactionId"`
	Category             *categories.Category `json:"category"`
	Tags                 []tags.Tag           `json:"tags"`
}

func (t Transaction) EntityID() uuid.UUID { return t.ID }

func (t Transaction) WithID(id uuid.UUID) Transaction {
	t.ID = id
	return t
}

// Normalize returns t in the form the store hands back: the date in UTC at
// microsecond precision and a non-nil tag list.
func (t Transaction) Normalize() Transaction {
	t.Date = t.Date.UTC().Truncate(time.Microsecond)
	if t.Tags == nil {
		t.Tags = []tags.Tag{}
	}
	return t
}

func (t Transaction) DisplayName() string {
	if t.AccountTransactionID != "" {
		return t.AccountTransactionID
	}
	return t.From.Name + " -> " + t.To.Name
}

func (t Transaction) Validate() error {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ledger.NewValidationError("Transaction amount must be a finite number")
	}
	if t.Date.IsZero() {
		return ledger.NewValidationError("Transaction date is required")
	}
	if err := validateAccount("from", t.From); err != nil {
		return err
	}
	if err := validateAccount("to", t.To); err != nil {
		return err
	}
	if t.Category != nil {
		if t.Category.ID == uuid.Nil {
			return ledger.NewValidationError("Transaction category id is required")
		}
		if err := t.Category.Validate(); err != nil {
			return err
		}
	}
	for _, tag := range t.Tags {
		if tag.ID == uuid.Nil {
			return ledger.NewValidationError("Transaction tag id is required")
		}
		if err := tag.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateAccount(field string, a accounts.Account) error {
	if a.ID == uuid.Nil {
		return ledger.NewValidationError("Transaction " + field + " account id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return ledger.NewValidationError("Transaction " + field + " account name is required")
	}
	return nil
}
