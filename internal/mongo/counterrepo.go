package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterRepo backs the per-day order numbering with an atomic upsert
// counter. One document per day key; $inc makes concurrent callers
// serialize on the server, so numbers are unique and gapless.
type CounterRepo struct {
	collection *mongo.Collection
}

func NewCounterRepo(db *mongo.Database) *CounterRepo {
	return &CounterRepo{
		collection: db.Collection("counters"),
	}
}

type counterDoc struct {
	Seq int `bson:"seq"`
}

// Next increments and returns the counter for key, creating it at 1.
func (r *CounterRepo) Next(ctx context.Context, key string) (int, error) {
	filter := bson.M{"_id": key}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("cannot advance counter %s: %w", key, err)
	}

	return doc.Seq, nil
}
