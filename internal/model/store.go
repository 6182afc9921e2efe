package model

import "context"

// Patch is a typed partial update for an entity of type T.
// Only fields set on the patch are written by Apply.
type Patch[T any] interface {
	Validate() error
	Apply(entity *T)
}

// Filter is a set of column equality predicates used for query-by-predicate.
type Filter map[string]any

// Store is the persistence contract shared by every resource.
type Store[T any] interface {
	// Create persists a new entity and returns it with its identifier populated.
	Create(ctx context.Context, entity T) (T, error)
	// Update applies patch to entity and, when commit is true, saves it.
	Update(ctx context.Context, entity *T, patch Patch[T], commit bool) error
	// Save persists the in-memory state of entity.
	Save(ctx context.Context, entity *T) error
	// Delete removes the entity with the given identifier.
	Delete(ctx context.Context, id int64) error
	// GetByID looks up an entity by a loosely typed identifier.
	GetByID(ctx context.Context, id any) (T, error)
	// FindBy returns every entity matching filter.
	FindBy(ctx context.Context, filter Filter) ([]T, error)
}
