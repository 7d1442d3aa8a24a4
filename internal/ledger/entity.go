// Package ledger holds the create/update/delete protocol shared by every
// bookkeeping entity: identity resolution, existence checks, pagination and
// the mapping of outcomes to HTTP statuses.
package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Entity is the capability bundle each vertical (account, category, tag,
// transaction) provides to the generic repository and handler.
type Entity[T any] interface {
	EntityID() uuid.UUID
	WithID(id uuid.UUID) T
	DisplayName() string
	Validate() error
}

// Normalizer is implemented by entities whose stored form differs from what a
// client may send, for example timestamps the store keeps at lower precision.
// The repository normalizes before validating and writing.
type Normalizer[T any] interface {
	Normalize() T
}

// Table is the persistence port for one entity type. Get reports absence with
// found == false and a nil error; Update and Delete report whether a row matched.
type Table[T any] interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]T, error)
	ListPage(ctx context.Context, offset, limit int) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (T, bool, error)
	Insert(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CreateRequest is either a request carrying a client-supplied identifier or
// one that leaves identifier assignment to the server.
type CreateRequest[T any] struct {
	id     uuid.UUID
	hasID  bool
	fields T
}

func NewCreateRequest[T any](fields T) CreateRequest[T] {
	return CreateRequest[T]{fields: fields}
}

func NewCreateRequestWithID[T any](id uuid.UUID, fields T) CreateRequest[T] {
	return CreateRequest[T]{id: id, hasID: true, fields: fields}
}

// ID returns the client-supplied identifier, if any.
func (r CreateRequest[T]) ID() (uuid.UUID, bool) {
	return r.id, r.hasID
}

func (r CreateRequest[T]) Fields() T {
	return r.fields
}

// Mode tells how a create request was resolved.
type Mode int

const (
	// ModeAccepted: the server generated the identifier.
	ModeAccepted Mode = iota + 1
	// ModeCreated: the record was stored under the client-supplied identifier.
	ModeCreated
)

func (m Mode) String() string {
	switch m {
	case ModeAccepted:
		return "accepted"
	case ModeCreated:
		return "created"
	default:
		return "unknown"
	}
}
