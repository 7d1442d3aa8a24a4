package ledgertest

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID uuid.UUID
}

func (r row) EntityID() uuid.UUID { return r.ID }

func TestMemTableListPage_OutOfRangeArguments(t *testing.T) {
	table := NewMemTable(row{ID: uuid.New()}, row{ID: uuid.New()}, row{ID: uuid.New()})
	ctx := context.Background()

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantLen int
	}{
		{name: "negative offset", offset: -4, limit: 2, wantLen: 0},
		{name: "offset past end", offset: 3, limit: 2, wantLen: 0},
		{name: "limit overflows end", offset: 1, limit: math.MaxInt, wantLen: 2},
		{name: "negative limit", offset: 0, limit: -1, wantLen: 3},
		{name: "in range", offset: 1, limit: 1, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []row
			require.NotPanics(t, func() {
				var err error
				got, err = table.ListPage(ctx, tt.offset, tt.limit)
				require.NoError(t, err)
			})
			assert.Len(t, got, tt.wantLen)
		})
	}
}
