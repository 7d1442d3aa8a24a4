package tags

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sebuszqo/TxTracker/internal/db/dbtest"
	"github.com/sebuszqo/TxTracker/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_UpdateReplacesName(t *testing.T) {
	svc := dbtest.NewDBService(t)
	repo := NewRepository(NewTable(svc.DB))
	ctx := context.Background()
	tag := Tag{ID: uuid.New(), Name: "holiday"}

	_, err := repo.Insert(ctx, tag)
	require.NoError(t, err)

	_, err = repo.Update(ctx, Tag{ID: tag.ID, Name: "vacation"})
	require.NoError(t, err)

	got, found, err := repo.Get(ctx, tag.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "vacation", got.Name)

	_, err = repo.Update(ctx, Tag{ID: uuid.New(), Name: "missing"})
	assert.True(t, ledger.IsNotFound(err))

	_, err = repo.Update(ctx, Tag{ID: tag.ID, Name: ""})
	assert.True(t, ledger.IsValidationError(err))
}
