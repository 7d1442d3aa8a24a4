package accounts

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/store"
)

func NewTable(db *sql.DB) ledger.Table[Account] {
	return store.NewNamedTable(db, "accounts",
		func(id uuid.UUID, name string) Account { return Account{ID: id, Name: name} },
		func(a Account) (uuid.UUID, string) { return a.ID, a.Name },
	)
}

func NewRepository(table ledger.Table[Account]) *ledger.Repository[Account] {
	return ledger.NewRepository[Account](EntityName, table)
}
