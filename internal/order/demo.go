package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const orderDemoSeedApplication = "order_demo"

// DemoCreatorID tags demo orders so tooling can find and remove them.
var DemoCreatorID = uuid.MustParse("00000000-0000-0000-0000-00000000d390")

type demoLine struct {
	name  string
	price int64
}

var demoMenu = []demoLine{
	{name: "Tea / Coffee", price: 15},
	{name: "Pakoda", price: 25},
	{name: "Samosa", price: 15},
	{name: "Kachori", price: 20},
	{name: "Pav Bhaji", price: 60},
	{name: "Vada Pav", price: 25},
	{name: "Sandwich", price: 40},
}

// ApplyDemoSeeds creates a week of sample stall orders.
func ApplyDemoSeeds(ctx context.Context, repo OrderRepo, numberer *DailyNumberer, db *mongo.Database, logger apt.Logger) error {
	if db == nil {
		return errors.New("database is required for demo seeding")
	}

	demoSeeds := []seed.Seed{
		{
			ID:          "2026-01-10_demo_orders",
			Description: "Create a week of demo orders with a realistic paid/pending mix",
			Run: func(ctx context.Context) error {
				return seedDemoOrders(ctx, repo, numberer)
			},
		},
	}

	tracker := seed.NewMongoTracker(db)

	logger.Info("Applying demo order seeds")
	if err := seed.Apply(ctx, tracker, demoSeeds, orderDemoSeedApplication); err != nil {
		return err
	}
	logger.Info("Demo order seeds applied successfully")
	return nil
}

func seedDemoOrders(ctx context.Context, repo OrderRepo, numberer *DailyNumberer) error {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	for daysAgo := 6; daysAgo >= 0; daysAgo-- {
		day := now.AddDate(0, 0, -daysAgo)
		perDay := 5 + rng.Intn(8)

		for n := 0; n < perDay; n++ {
			hour := 8 + rng.Intn(14)
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, rng.Intn(60), 0, 0, day.Location())

			o := buildDemoOrder(rng, at)
			if numberer != nil {
				number, err := numberer.Next(ctx, at)
				if err != nil {
					return fmt.Errorf("assign demo order number: %w", err)
				}
				o.DailyNumber = number
			}

			if err := repo.Create(ctx, o); err != nil {
				return fmt.Errorf("create demo order: %w", err)
			}
		}
	}

	return nil
}

func buildDemoOrder(rng *rand.Rand, at time.Time) *Order {
	o := NewOrder()
	o.CreatedBy = DemoCreatorID
	o.CreatedAt = at
	o.UpdatedAt = at

	// Most stall orders settle on the spot.
	o.PaymentDone = rng.Intn(10) < 8

	lines := 1 + rng.Intn(3)
	for i := 0; i < lines; i++ {
		item := demoMenu[rng.Intn(len(demoMenu))]
		qty := 1 + rng.Intn(3)
		o.Items = append(o.Items, LineItem{
			Name:  item.name,
			Qty:   qty,
			Price: item.price,
			Total: int64(qty) * item.price,
		})
	}
	for _, item := range o.Items {
		o.TotalAmount += item.Total
	}

	return o
}

// DemoSeedingFunc adapts ApplyDemoSeeds to a lifecycle OnStart hook.
func DemoSeedingFunc(seedCtx context.Context, repo OrderRepo, numberer *DailyNumberer, db *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return func(context.Context) error {
		go func() {
			if err := ApplyDemoSeeds(seedCtx, repo, numberer, db, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("demo seeding failed", "error", err)
			}
		}()
		return nil
	}
}
