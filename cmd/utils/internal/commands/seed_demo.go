package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/snacktrackhq/snacktrack/cmd/utils/internal/seeding"
)

const demoOrdersSeedID = "demo_orders_v1"

// SeedDemo loads a week of sample orders into the SnackTrack database
func SeedDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo seeding process...")

	client, dbName, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(dbName)
	if err := seedOrderDemo(ctx, db, logger); err != nil {
		return fmt.Errorf("seed order demo: %w", err)
	}

	return nil
}

func seedOrderDemo(ctx context.Context, db *mongo.Database, logger apt.Logger) error {
	seedsCollection := db.Collection("_seeds")
	count, err := seedsCollection.CountDocuments(ctx, bson.M{"_id": demoOrdersSeedID})
	if err != nil {
		return fmt.Errorf("check seed status: %w", err)
	}

	if count > 0 {
		logger.Info("Order demo seeds already applied, skipping")
		return nil
	}

	if err := seeding.SeedOrders(ctx, db); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}

	_, err = seedsCollection.InsertOne(ctx, bson.M{
		"_id":         demoOrdersSeedID,
		"description": "Create a week of demo orders with realistic paid/pending mix",
		"applied_at":  bson.M{"$currentDate": bson.M{"$type": "timestamp"}},
	})
	if err != nil {
		logger.Infof("Failed to mark seed as applied: %v", err)
	}

	logger.Info("Order demo seeds applied successfully")
	return nil
}
