// Package ledgertest provides an in-memory ledger.Table for handler and
// repository tests.
package ledgertest

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type identified interface {
	EntityID() uuid.UUID
}

// MemTable keeps rows in insertion order. Err, when set, is returned by every
// call; InsertErr only by Insert.
type MemTable[T identified] struct {
	mu    sync.Mutex
	order []uuid.UUID
	rows  map[uuid.UUID]T

	Err       error
	InsertErr error

	Inserts int
	Updates int
}

func NewMemTable[T identified](seed ...T) *MemTable[T] {
	m := &MemTable[T]{rows: make(map[uuid.UUID]T)}
	for _, row := range seed {
		m.put(row)
	}
	return m
}

func (m *MemTable[T]) put(row T) {
	id := row.EntityID()
	if _, ok := m.rows[id]; !ok {
		m.order = append(m.order, id)
	}
	m.rows[id] = row
}

func (m *MemTable[T]) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.rows[id]
	return ok, nil
}

func (m *MemTable[T]) List(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *MemTable[T]) ListPage(ctx context.Context, offset, limit int) ([]T, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset >= len(all) {
		return []T{}, nil
	}
	end := offset + limit
	if limit < 0 || end < offset || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MemTable[T]) Get(_ context.Context, id uuid.UUID) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.Err != nil {
		return zero, false, m.Err
	}
	row, ok := m.rows[id]
	return row, ok, nil
}

func (m *MemTable[T]) Insert(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Inserts++
	m.put(entity)
	return nil
}

func (m *MemTable[T]) Update(_ context.Context, entity T) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.rows[entity.EntityID()]; !ok {
		return false, nil
	}
	m.Updates++
	m.rows[entity.EntityID()] = entity
	return true, nil
}

func (m *MemTable[T]) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Len reports the number of stored rows.
func (m *MemTable[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
