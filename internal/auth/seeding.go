package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const authSeedApplication = "auth"

// ApplyOwnerSeed ensures the configured owner account exists. There is
// no self-signup, so this is the only way the first credential enters
// the system.
func ApplyOwnerSeed(ctx context.Context, repo UserRepo, db *mongo.Database, config *apt.Config, logger apt.Logger) error {
	if repo == nil {
		return errors.New("user repository is required")
	}
	if config == nil {
		return errors.New("configuration is required")
	}
	if db == nil {
		return errors.New("database is required for seeding")
	}

	email, _ := config.GetString("auth.seed.owner.email")
	password, _ := config.GetString("auth.seed.owner.password")
	if email == "" || password == "" {
		logger.Info("Owner seed not configured, skipping")
		return nil
	}

	seeds := []seed.Seed{
		{
			ID:          "2026-01-10_owner_account",
			Description: "Create the stall owner account",
			Run: func(ctx context.Context) error {
				return seedOwner(ctx, repo, email, password)
			},
		},
	}

	tracker := seed.NewMongoTracker(db)

	logger.Info("Applying auth seeds")
	if err := seed.Apply(ctx, tracker, seeds, authSeedApplication); err != nil {
		return err
	}
	logger.Info("Auth seeds applied successfully")
	return nil
}

func seedOwner(ctx context.Context, repo UserRepo, email, password string) error {
	existing, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("lookup owner account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash owner password: %w", err)
	}

	owner := NewUser()
	owner.Email = email
	owner.PasswordHash = hash
	owner.Role = RoleOwner
	owner.BeforeCreate()

	if err := repo.Create(ctx, owner); err != nil {
		return fmt.Errorf("create owner account: %w", err)
	}
	return nil
}

// SeedingFunc adapts ApplyOwnerSeed to a lifecycle OnStart hook.
func SeedingFunc(seedCtx context.Context, repo UserRepo, db *mongo.Database, config *apt.Config, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return func(context.Context) error {
		go func() {
			if err := ApplyOwnerSeed(seedCtx, repo, db, config, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("auth seeding failed", "error", err)
			}
		}()
		return nil
	}
}
