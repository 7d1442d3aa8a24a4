package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/db/dbtest"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateGetDelete(t *testing.T) {
	svc := dbtest.NewDBService(t)
	repo := NewRepository(NewTable(svc.DB))
	ctx := context.Background()

	created, mode, err := repo.Create(ctx, ledger.NewCreateRequest(Category{Name: "Groceries"}))
	require.NoError(t, err)
	assert.Equal(t, ledger.ModeAccepted, mode)

	got, found, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)

	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	_, _, err = repo.Create(ctx, ledger.NewCreateRequestWithID(id, Category{Name: "Rent"}))
	require.NoError(t, err)
	_, _, err = repo.Create(ctx, ledger.NewCreateRequestWithID(id, Category{Name: "Rent"}))
	assert.EqualError(t, err, "Category with ID '11111111-1111-1111-1111-111111111111' already exists.")

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, found, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
