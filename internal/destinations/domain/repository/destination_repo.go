package repository

import (
	"context"
	"time"

	"love-journey/internal/destinations/domain/model"
)

// DestinationRepository defines persistence operations on the destinations
// collection. Implementations return the shared error sentinels so callers
// can map failures to the HTTP taxonomy.
type DestinationRepository interface {
	// List returns every destination ordered by creation timestamp ascending.
	List(ctx context.Context) ([]*model.Destination, error)
	// Insert stores a new destination and returns it with its assigned ID.
	Insert(ctx context.Context, dest *model.Destination) (*model.Destination, error)
	// Update merges fields onto the record with the given ID and stamps
	// updated_at. Returns ErrDestinationNotFound if no record matches.
	Update(ctx context.Context, id string, fields map[string]interface{}, updatedAt time.Time) error
	// Delete removes the record with the given ID. Returns
	// ErrDestinationNotFound if no record matches.
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every record and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)
	// InsertMany stores the given destinations in order and returns the
	// number inserted.
	InsertMany(ctx context.Context, dests []*model.Destination) (int64, error)
}

// ReadinessReporter exposes whether the backing store is connected.
type ReadinessReporter interface {
	IsReady() bool
}
