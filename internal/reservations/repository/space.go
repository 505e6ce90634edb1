package repository

import (
	"context"
	"errors"
	"fmt"
	reserrors "parkeo/internal/reservations/errors"
	"parkeo/pkg/config"
	"parkeo/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SpaceRepository interface {
	EnsureInventory(ctx context.Context, count int) error
	FindByNumber(ctx context.Context, number int) (*model.ParkingSpace, error)
	FindAll(ctx context.Context) ([]*model.ParkingSpace, error)
	SetActive(ctx context.Context, number int, active bool) error
}

type mongoSpaceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSpaceRepository(cfg *config.Config) SpaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSpaceRepository{
		cfg:        cfg,
		collection: db.Collection("Spaces"),
	}
}

// EnsureInventory upserts spaces 1..count. Idempotent; re-running after a
// config change only adds the missing numbers and never flips Active on
// spaces an operator has deactivated.
func (r *mongoSpaceRepository) EnsureInventory(ctx context.Context, count int) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	var ops []mongo.WriteModel
	for n := 1; n <= count; n++ {
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": model.SpaceID(n)}).
			SetUpdate(bson.M{
				"$setOnInsert": bson.M{
					"number":     n,
					"active":     true,
					"created_at": now,
				},
			}).
			SetUpsert(true))
	}

	if _, err := r.collection.BulkWrite(ctx, ops); err != nil {
		return fmt.Errorf("failed to ensure space inventory: %w", err)
	}
	return nil
}

func (r *mongoSpaceRepository) FindByNumber(ctx context.Context, number int) (*model.ParkingSpace, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var space model.ParkingSpace
	err := r.collection.FindOne(ctx, bson.M{"number": number}).Decode(&space)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrSpaceNotFound
		}
		return nil, fmt.Errorf("failed to find space: %w", err)
	}

	return &space, nil
}

func (r *mongoSpaceRepository) FindAll(ctx context.Context) ([]*model.ParkingSpace, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer cursor.Close(ctx)

	var spaces []*model.ParkingSpace
	if err := cursor.All(ctx, &spaces); err != nil {
		return nil, fmt.Errorf("failed to decode spaces: %w", err)
	}

	return spaces, nil
}

func (r *mongoSpaceRepository) SetActive(ctx context.Context, number int, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"number": number}, bson.M{
		"$set": bson.M{"active": active},
	})
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrSpaceNotFound
	}
	return nil
}
