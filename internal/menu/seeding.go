package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const menuSeedApplication = "menu"

type snackSeed struct {
	Name  string
	Price int64
}

// The stall's default card. Prices are whole rupees.
var defaultSnacks = []snackSeed{
	{Name: "Tea / Coffee", Price: 15},
	{Name: "Pakoda", Price: 25},
	{Name: "Samosa", Price: 15},
	{Name: "Kachori", Price: 20},
	{Name: "Pav Bhaji", Price: 60},
	{Name: "Vada Pav", Price: 25},
	{Name: "Sandwich", Price: 40},
}

// ApplyCatalogSeeds loads the default snack catalog on first start.
func ApplyCatalogSeeds(ctx context.Context, repo SnackRepo, db *mongo.Database, logger apt.Logger) error {
	if repo == nil {
		return errors.New("snack repository is required")
	}
	if db == nil {
		return errors.New("database is required for seeding")
	}

	seeds := []seed.Seed{
		{
			ID:          "2026-01-10_default_snacks",
			Description: "Load the default snack catalog",
			Run: func(ctx context.Context) error {
				return seedDefaultSnacks(ctx, repo)
			},
		},
	}

	tracker := seed.NewMongoTracker(db)

	logger.Info("Applying menu seeds")
	if err := seed.Apply(ctx, tracker, seeds, menuSeedApplication); err != nil {
		return err
	}
	logger.Info("Menu seeds applied successfully")
	return nil
}

func seedDefaultSnacks(ctx context.Context, repo SnackRepo) error {
	for _, s := range defaultSnacks {
		existing, err := repo.GetByName(ctx, s.Name)
		if err != nil {
			return fmt.Errorf("lookup snack %s: %w", s.Name, err)
		}
		if existing != nil {
			continue
		}

		snack := NewSnack()
		snack.Name = s.Name
		snack.Price = s.Price
		snack.BeforeCreate()

		if err := repo.Create(ctx, snack); err != nil {
			return fmt.Errorf("create snack %s: %w", s.Name, err)
		}
	}
	return nil
}

// SeedingFunc adapts ApplyCatalogSeeds to a lifecycle OnStart hook.
func SeedingFunc(seedCtx context.Context, repo SnackRepo, db *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return func(context.Context) error {
		go func() {
			if err := ApplyCatalogSeeds(seedCtx, repo, db, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("menu seeding failed", "error", err)
			}
		}()
		return nil
	}
}
