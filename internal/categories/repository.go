package categories

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/store"
)

func NewTable(db *sql.DB) ledger.Table[Category] {
	return store.NewNamedTable(db, "categories",
		func(id uuid.UUID, name string) Category { return Category{ID: id, Name: name} },
		func(c Category) (uuid.UUID, string) { return c.ID, c.Name },
	)
}

func NewRepository(table ledger.Table[Category]) *ledger.Repository[Category] {
	return ledger.NewRepository[Category](EntityName, table)
}
