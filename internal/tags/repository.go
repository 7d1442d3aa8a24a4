package tags

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/store"
)

func NewTable(db *sql.DB) ledger.Table[Tag] {
	return store.NewNamedTable(db, "tags",
		func(id uuid.UUID, name string) Tag { return Tag{ID: id, Name: name} },
		func(t Tag) (uuid.UUID, string) { return t.ID, t.Name },
	)
}

func NewRepository(table ledger.Table[Tag]) *ledger.Repository[Tag] {
	return ledger.NewRepository[Tag](EntityName, table)
}
