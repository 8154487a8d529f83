package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/snacktrackhq/snacktrack/cmd/utils/internal/seeding"
)

// ClearDemo removes the sample orders created by seed-demo
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Clearing demo data...")

	client, dbName, err := connect(ctx, config)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	logger.Info("Connected to MongoDB")

	db := client.Database(dbName)

	deleted, err := seeding.ClearOrders(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("Demo orders removed", "count", deleted)

	// Drop the seed marker so seed-demo can run again.
	if _, err := db.Collection("_seeds").DeleteOne(ctx, bson.M{"_id": demoOrdersSeedID}); err != nil {
		return fmt.Errorf("clear seed marker: %w", err)
	}

	return nil
}
