package transactions

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/categories"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/sebuszqo/TxTracker/internal/store"
	"github.com/sebuszqo/TxTracker/internal/tags"
)

const selectColumns = `t.id, t.amount, t.date, t.from_account_id, t.from_account_name,
	t.to_account_id, t.to_account_name, t.account_transaction_id,
	t.category_id, t.category_name, tt.tag_id, tt.tag_name`

type table struct {
	db *sql.DB
}

// NewTable stores transactions in the transactions table with their tags in
// transaction_tags. Every write runs in its own SQL transaction.
func NewTable(db *sql.DB) ledger.Table[Transaction] {
	return &table{db: db}
}

func NewRepository(t ledger.Table[Transaction]) *ledger.Repository[Transaction] {
	return ledger.NewRepository[Transaction](EntityName, t)
}

func (r *table) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *table) List(ctx context.Context) ([]Transaction, error) {
	query := `SELECT ` + selectColumns + `
		FROM transactions t
		LEFT JOIN transaction_tags tt ON tt.transaction_id = t.id
		ORDER BY t.date, t.id, tt.position`
	return r.query(ctx, query)
}

func (r *table) ListPage(ctx context.Context, offset, limit int) ([]Transaction, error) {
	query := `WITH page AS (
			SELECT * FROM transactions ORDER BY date, id OFFSET $1 LIMIT $2
		)
		SELECT ` + selectColumns + `
		FROM page t
		LEFT JOIN transaction_tags tt ON tt.transaction_id = t.id
		ORDER BY t.date, t.id, tt.position`
	return r.query(ctx, query, offset, limit)
}

func (r *table) Get(ctx context.Context, id uuid.UUID) (Transaction, bool, error) {
	query := `SELECT ` + selectColumns + `
		FROM transactions t
		LEFT JOIN transaction_tags tt ON tt.transaction_id = t.id
		WHERE t.id = $1
		ORDER BY tt.position`

	items, err := r.query(ctx, query, id)
	if err != nil {
		return Transaction{}, false, err
	}
	if len(items) == 0 {
		return Transaction{}, false, nil
	}
	return items[0], true, nil
}

func (r *table) Insert(ctx context.Context, tx Transaction) error {
	return store.WithTx(ctx, r.db, func(sqlTx *sql.Tx) error {
		categoryID, categoryName := categoryColumns(tx.Category)
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO transactions (id, amount, date, from_account_id, from_account_name,
				to_account_id, to_account_name, account_transaction_id, category_id, category_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			tx.ID, tx.Amount, tx.Date, tx.From.ID, tx.From.Name,
			tx.To.ID, tx.To.Name, tx.AccountTransactionID, categoryID, categoryName)
		if err != nil {
			return err
		}
		return insertTags(ctx, sqlTx, tx.ID, tx.Tags)
	})
}

// Update overwrites the mutable columns and replaces the tag list.
func (r *table) Update(ctx context.Context, tx Transaction) (bool, error) {
	var found bool
	err := store.WithTx(ctx, r.db, func(sqlTx *sql.Tx) error {
		categoryID, categoryName := categoryColumns(tx.Category)
		result, err := sqlTx.ExecContext(ctx, `
			UPDATE transactions
			SET amount = $1, date = $2, from_account_id = $3, from_account_name = $4,
				to_account_id = $5, to_account_name = $6, account_transaction_id = $7,
				category_id = $8, category_name = $9
			WHERE id = $10`,
			tx.Amount, tx.Date, tx.From.ID, tx.From.Name, tx.To.ID, tx.To.Name,
			tx.AccountTransactionID, categoryID, categoryName, tx.ID)
		if err != nil {
			return err
		}
		if found, err = store.Matched(result); err != nil || !found {
			return err
		}

		if _, err := sqlTx.ExecContext(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1`, tx.ID); err != nil {
			return err
		}
		return insertTags(ctx, sqlTx, tx.ID, tx.Tags)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Delete relies on ON DELETE CASCADE to drop the tag rows in the same statement.
func (r *table) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return store.Matched(result)
}

func (r *table) query(ctx context.Context, query string, args ...interface{}) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Transaction{}
	for rows.Next() {
		var (
			t            Transaction
			categoryID   uuid.NullUUID
			categoryName sql.NullString
			tagID        uuid.NullUUID
			tagName      sql.NullString
		)
		err := rows.Scan(&t.ID, &t.Amount, &t.Date, &t.From.ID, &t.From.Name,
			&t.To.ID, &t.To.Name, &t.AccountTransactionID,
			&categoryID, &categoryName, &tagID, &tagName)
		if err != nil {
			return nil, err
		}

		// Rows of one transaction are adjacent because of the ORDER BY.
		if n := len(items); n == 0 || items[n-1].ID != t.ID {
			t.Date = t.Date.UTC()
			if categoryID.Valid {
				t.Category = &categories.Category{ID: categoryID.UUID, Name: categoryName.String}
			}
			t.Tags = []tags.Tag{}
			items = append(items, t)
		}
		if tagID.Valid {
			last := &items[len(items)-1]
			last.Tags = append(last.Tags, tags.Tag{ID: tagID.UUID, Name: tagName.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func insertTags(ctx context.Context, sqlTx *sql.Tx, transactionID uuid.UUID, list []tags.Tag) error {
	for position, tag := range list {
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO transaction_tags (transaction_id, position, tag_id, tag_name)
			VALUES ($1, $2, $3, $4)`,
			transactionID, position, tag.ID, tag.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

func categoryColumns(c *categories.Category) (uuid.NullUUID, sql.NullString) {
	if c == nil {
		return uuid.NullUUID{}, sql.NullString{}
	}
	return uuid.NullUUID{UUID: c.ID, Valid: true}, sql.NullString{String: c.Name, Valid: true}
}
