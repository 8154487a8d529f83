package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/snacktrackhq/snacktrack/internal/auth"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
	}
}

func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	if _, err := r.collection.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("cannot create user: %w", err)
	}

	return nil
}

func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	var u auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": auth.NormalizeEmail(email)}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list users: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*auth.User
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode users: %w", err)
	}

	return result, nil
}

func (r *UserRepo) Save(ctx context.Context, u *auth.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	filter := bson.M{"_id": u.ID}
	update := bson.M{"$set": u}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update user: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
