package mongodb

import (
	"context"
	"time"

	"love-journey/internal/destinations/domain/model"
	apperrors "love-journey/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DestinationRepository implements the repository interface against the
// destinations collection. It resolves the collection through the connector
// on every call, so it is safe to construct before the store is reachable.
type DestinationRepository struct {
	connector *Connector
}

// NewDestinationRepository creates a MongoDB-backed destination repository.
func NewDestinationRepository(connector *Connector) *DestinationRepository {
	return &DestinationRepository{connector: connector}
}

func (r *DestinationRepository) collection() (*mongo.Collection, error) {
	db := r.connector.Database()
	if db == nil {
		return nil, apperrors.ErrServiceUnavailable
	}
	return db.Collection(destinationsCollection), nil
}

// List returns all destinations sorted by creation timestamp ascending.
func (r *DestinationRepository) List(ctx context.Context) ([]*model.Destination, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list destinations").WithCause(err)
	}
	defer cursor.Close(ctx)

	dests := make([]*model.Destination, 0)
	if err := cursor.All(ctx, &dests); err != nil {
		return nil, apperrors.NewStorageError("failed to decode destinations").WithCause(err)
	}
	return dests, nil
}

// Insert stores a new destination. The ID is assigned by the store.
func (r *DestinationRepository) Insert(ctx context.Context, dest *model.Destination) (*model.Destination, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	dest.ID = primitive.NilObjectID
	result, err := coll.InsertOne(ctx, dest)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to insert destination").WithCause(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		dest.ID = oid
	}
	return dest, nil
}

// Update merges the given fields onto the matching record and stamps
// updated_at. A malformed hex ID is a storage error, not a NotFound.
func (r *DestinationRepository) Update(ctx context.Context, id string, fields map[string]interface{}, updatedAt time.Time) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewStorageError("malformed destination id").WithCause(err)
	}

	set := bson.M{"updated_at": updatedAt}
	for key, value := range fields {
		set[key] = value
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return apperrors.NewStorageError("failed to update destination").WithCause(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrDestinationNotFound
	}
	return nil
}

// Delete removes the matching record.
func (r *DestinationRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewStorageError("malformed destination id").WithCause(err)
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return apperrors.NewStorageError("failed to delete destination").WithCause(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrDestinationNotFound
	}
	return nil
}

// DeleteAll removes every record and returns the number removed.
func (r *DestinationRepository) DeleteAll(ctx context.Context) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	result, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.NewStorageError("failed to clear destinations").WithCause(err)
	}
	return result.DeletedCount, nil
}

// InsertMany stores the given destinations preserving input order.
func (r *DestinationRepository) InsertMany(ctx context.Context, dests []*model.Destination) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	docs := make([]interface{}, len(dests))
	for i, dest := range dests {
		dest.ID = primitive.NilObjectID
		docs[i] = dest
	}

	result, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		var inserted int64
		if result != nil {
			inserted = int64(len(result.InsertedIDs))
		}
		return inserted, apperrors.NewStorageError("failed to import destinations").WithCause(err)
	}
	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok {
			dests[i].ID = oid
		}
	}
	return int64(len(result.InsertedIDs)), nil
}
