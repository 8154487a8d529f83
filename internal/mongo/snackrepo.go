package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/snacktrackhq/snacktrack/internal/menu"
)

type SnackRepo struct {
	collection *mongo.Collection
}

func NewSnackRepo(db *mongo.Database) *SnackRepo {
	return &SnackRepo{
		collection: db.Collection("snacks"),
	}
}

func (r *SnackRepo) Create(ctx context.Context, s *menu.Snack) error {
	if s == nil {
		return fmt.Errorf("snack is nil")
	}

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("cannot create snack: %w", err)
	}

	return nil
}

func (r *SnackRepo) Get(ctx context.Context, id uuid.UUID) (*menu.Snack, error) {
	var s menu.Snack
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get snack: %w", err)
	}
	return &s, nil
}

func (r *SnackRepo) GetByName(ctx context.Context, name string) (*menu.Snack, error) {
	var s menu.Snack
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get snack by name: %w", err)
	}
	return &s, nil
}

func (r *SnackRepo) List(ctx context.Context) ([]*menu.Snack, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list snacks: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*menu.Snack
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode snacks: %w", err)
	}

	return result, nil
}

func (r *SnackRepo) Save(ctx context.Context, s *menu.Snack) error {
	if s == nil {
		return fmt.Errorf("snack is nil")
	}

	filter := bson.M{"_id": s.ID}
	update := bson.M{"$set": s}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update snack: %w", err)
	}

	if result.MatchedCount == 0 {
		return menu.ErrSnackNotFound
	}

	return nil
}

func (r *SnackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete snack: %w", err)
	}

	if result.DeletedCount == 0 {
		return menu.ErrSnackNotFound
	}

	return nil
}
