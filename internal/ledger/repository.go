package ledger

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// Repository mediates every read and write of one entity type. It holds no
// state besides its table, so a single value is safe for concurrent requests.
type Repository[T Entity[T]] struct {
	entity string
	table  Table[T]
	newID  func() uuid.UUID
}

func NewRepository[T Entity[T]](entity string, table Table[T]) *Repository[T] {
	return &Repository[T]{
		entity: entity,
		table:  table,
		newID:  uuid.New,
	}
}

func (r *Repository[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.table.Exists(ctx, id)
	if err != nil {
		return false, storeFailure("exists", err)
	}
	return exists, nil
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	items, err := r.table.List(ctx)
	if err != nil {
		return nil, storeFailure("list", err)
	}
	return items, nil
}

// ListPage returns at most pageSize items starting at (page-1)*pageSize.
// Page 0 is the default page number and reads the first page. A page whose
// offset does not fit in an int is past any stored row and reads as empty.
func (r *Repository[T]) ListPage(ctx context.Context, page, pageSize int) ([]T, error) {
	if page < 0 {
		return nil, NewValidationError("Page parameter must be greater than or equal to 0.")
	}
	if pageSize < 1 {
		return nil, NewValidationError("Page size parameter must be greater than 0.")
	}

	offset := 0
	if page > 1 {
		if page-1 > math.MaxInt/pageSize {
			return []T{}, nil
		}
		offset = (page - 1) * pageSize
	}

	items, err := r.table.ListPage(ctx, offset, pageSize)
	if err != nil {
		return nil, storeFailure("list page", err)
	}
	return items, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (T, bool, error) {
	item, found, err := r.table.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, false, storeFailure("get", err)
	}
	return item, found, nil
}

// Create resolves the identity of req: without an identifier a fresh one is
// generated and the result is ModeAccepted, otherwise the record is inserted
// under the supplied identifier (ModeCreated) or rejected with a ConflictError.
func (r *Repository[T]) Create(ctx context.Context, req CreateRequest[T]) (T, Mode, error) {
	id, ok := req.ID()
	if !ok {
		entity := normalize(req.Fields().WithID(r.newID()))
		if err := entity.Validate(); err != nil {
			return entity, 0, err
		}
		if err := r.table.Insert(ctx, entity); err != nil {
			return entity, 0, r.insertFailure(entity.EntityID(), err)
		}
		return entity, ModeAccepted, nil
	}

	entity, err := r.Insert(ctx, req.Fields().WithID(id))
	if err != nil {
		return entity, 0, err
	}
	return entity, ModeCreated, nil
}

// Insert stores entity under its own identifier. The existence check only
// short-circuits the common case; a concurrent duplicate is caught by the
// primary key and reported the same way.
func (r *Repository[T]) Insert(ctx context.Context, entity T) (T, error) {
	entity = normalize(entity)
	if err := entity.Validate(); err != nil {
		return entity, err
	}

	exists, err := r.Exists(ctx, entity.EntityID())
	if err != nil {
		return entity, err
	}
	if exists {
		return entity, &ConflictError{Entity: r.entity, ID: entity.EntityID()}
	}

	if err := r.table.Insert(ctx, entity); err != nil {
		return entity, r.insertFailure(entity.EntityID(), err)
	}
	return entity, nil
}

func (r *Repository[T]) Update(ctx context.Context, entity T) (T, error) {
	entity = normalize(entity)
	if err := entity.Validate(); err != nil {
		return entity, err
	}

	matched, err := r.table.Update(ctx, entity)
	if err != nil {
		return entity, storeFailure("update", err)
	}
	if !matched {
		return entity, &NotFoundError{Entity: r.entity, ID: entity.EntityID()}
	}
	return entity, nil
}

// Upsert updates entity when its identifier exists and creates it otherwise.
// created reports which branch ran.
func (r *Repository[T]) Upsert(ctx context.Context, entity T) (result T, created bool, err error) {
	entity = normalize(entity)
	if err := entity.Validate(); err != nil {
		return entity, false, err
	}

	exists, err := r.Exists(ctx, entity.EntityID())
	if err != nil {
		return entity, false, err
	}
	if exists {
		result, err = r.Update(ctx, entity)
		return result, false, err
	}

	result, err = r.Insert(ctx, entity)
	return result, err == nil, err
}

func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	matched, err := r.table.Delete(ctx, id)
	if err != nil {
		return storeFailure("delete", err)
	}
	if !matched {
		return &NotFoundError{Entity: r.entity, ID: id}
	}
	return nil
}

func (r *Repository[T]) insertFailure(id uuid.UUID, err error) error {
	if isUniqueViolation(err) {
		return &ConflictError{Entity: r.entity, ID: id}
	}
	return storeFailure("insert", err)
}

// normalize applies the entity's Normalizer, if any, so the value handed back
// to the caller is the one the store will return on the next read.
func normalize[T Entity[T]](entity T) T {
	if n, ok := any(entity).(Normalizer[T]); ok {
		return n.Normalize()
	}
	return entity
}
